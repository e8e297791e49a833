package po

import "time"

// Notification 持久化对象，对应 notifications 表。
type Notification struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID      uint64     `gorm:"column:user_id;not null;index:idx_notifications_user_read,priority:1"`
	Type        string     `gorm:"column:type;size:64;not null"`
	Title       string     `gorm:"column:title;size:255;not null"`
	Message     string     `gorm:"column:message;type:text"`
	RelatedID   *uint64    `gorm:"column:related_id;index:idx_notifications_related,priority:1"`
	RelatedType string     `gorm:"column:related_type;size:32;index:idx_notifications_related,priority:2"`
	IsRead      bool       `gorm:"column:is_read;not null;default:false;index:idx_notifications_user_read,priority:2"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	ReadAt      *time.Time `gorm:"column:read_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
