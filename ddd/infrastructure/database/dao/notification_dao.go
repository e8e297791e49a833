package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"blog-service/ddd/infrastructure/database/po"
	"blog-service/internal/resource"
)

type NotificationDao struct {
	db *gorm.DB
}

func NewNotificationDao() *NotificationDao {
	return &NotificationDao{db: resource.MainDB()}
}

func NewNotificationDaoWithDB(db *gorm.DB) *NotificationDao {
	return &NotificationDao{db: db}
}

func (d *NotificationDao) Create(ctx context.Context, p *po.Notification) error {
	return d.db.WithContext(ctx).Create(p).Error
}

func (d *NotificationDao) GetByID(ctx context.Context, id uint64) (*po.Notification, error) {
	var p po.Notification
	err := d.db.WithContext(ctx).Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *NotificationDao) ListByUser(ctx context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]po.Notification, error) {
	var pos []po.Notification
	q := d.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	err := q.Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}
	return pos, nil
}

func (d *NotificationDao) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&po.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead only touches unread rows owned by userID.
func (d *NotificationDao) MarkRead(ctx context.Context, id, userID uint64, at time.Time) error {
	return d.db.WithContext(ctx).
		Model(&po.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		}).Error
}

func (d *NotificationDao) MarkAllRead(ctx context.Context, userID uint64, at time.Time) (int64, error) {
	res := d.db.WithContext(ctx).
		Model(&po.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": at,
		})
	return res.RowsAffected, res.Error
}

func (d *NotificationDao) DeleteByRelated(ctx context.Context, relatedID uint64, relatedType string) error {
	return d.db.WithContext(ctx).
		Where("related_id = ? AND related_type = ?", relatedID, relatedType).
		Delete(&po.Notification{}).Error
}
