package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/infrastructure/database/dao"
	"blog-service/ddd/infrastructure/database/po"
)

type notificationRepositoryImpl struct {
	dao *dao.NotificationDao
}

func NewNotificationRepository() drepo.NotificationRepository {
	return &notificationRepositoryImpl{dao: dao.NewNotificationDao()}
}

func NewNotificationRepositoryWithDB(db *gorm.DB) drepo.NotificationRepository {
	return &notificationRepositoryImpl{dao: dao.NewNotificationDaoWithDB(db)}
}

func (r *notificationRepositoryImpl) Create(ctx context.Context, n *entity.Notification) error {
	p := &po.Notification{
		UserID:      n.UserID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
		ReadAt:      n.ReadAt,
	}
	if err := r.dao.Create(ctx, p); err != nil {
		return err
	}
	n.ID = p.ID
	n.CreatedAt = p.CreatedAt
	return nil
}

func (r *notificationRepositoryImpl) GetByID(ctx context.Context, id uint64) (*entity.Notification, error) {
	p, err := r.dao.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return notificationFromPO(p), nil
}

func (r *notificationRepositoryImpl) ListByUser(ctx context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]*entity.Notification, error) {
	pos, err := r.dao.ListByUser(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		return nil, err
	}
	res := make([]*entity.Notification, 0, len(pos))
	for i := range pos {
		res = append(res, notificationFromPO(&pos[i]))
	}
	return res, nil
}

func (r *notificationRepositoryImpl) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	return r.dao.CountUnread(ctx, userID)
}

func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, id, userID uint64, at time.Time) error {
	return r.dao.MarkRead(ctx, id, userID, at)
}

func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, userID uint64, at time.Time) (int64, error) {
	return r.dao.MarkAllRead(ctx, userID, at)
}

func (r *notificationRepositoryImpl) DeleteByRelated(ctx context.Context, relatedID uint64, relatedType string) error {
	return r.dao.DeleteByRelated(ctx, relatedID, relatedType)
}

func notificationFromPO(p *po.Notification) *entity.Notification {
	return &entity.Notification{
		ID:          p.ID,
		UserID:      p.UserID,
		Type:        entity.NotificationType(p.Type),
		Title:       p.Title,
		Message:     p.Message,
		RelatedID:   p.RelatedID,
		RelatedType: p.RelatedType,
		IsRead:      p.IsRead,
		CreatedAt:   p.CreatedAt,
		ReadAt:      p.ReadAt,
	}
}
