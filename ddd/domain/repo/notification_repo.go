package repo

import (
	"context"
	"time"

	"blog-service/ddd/domain/entity"
)

// NotificationRepository 通知仓储接口，隐藏具体持久化实现。
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id uint64) (*entity.Notification, error)
	ListByUser(ctx context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, userID uint64) (int64, error)
	MarkRead(ctx context.Context, id, userID uint64, at time.Time) error
	MarkAllRead(ctx context.Context, userID uint64, at time.Time) (int64, error)
	DeleteByRelated(ctx context.Context, relatedID uint64, relatedType string) error
}
