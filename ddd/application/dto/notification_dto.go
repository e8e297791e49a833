package dto

import (
	"time"

	"blog-service/ddd/domain/entity"
)

// NotificationDto 向上层暴露的通知视图模型。
type NotificationDto struct {
	ID          uint64     `json:"id"`
	Type        string     `json:"type"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	RelatedID   *uint64    `json:"related_id,omitempty"`
	RelatedType string     `json:"related_type,omitempty"`
	IsRead      bool       `json:"is_read"`
	CreatedAt   time.Time  `json:"created_at"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// NewNotificationDto 由领域对象构建视图模型。
func NewNotificationDto(n *entity.Notification) NotificationDto {
	return NotificationDto{
		ID:          n.ID,
		Type:        string(n.Type),
		Title:       n.Title,
		Message:     n.Message,
		RelatedID:   n.RelatedID,
		RelatedType: n.RelatedType,
		IsRead:      n.IsRead,
		CreatedAt:   n.CreatedAt,
		ReadAt:      n.ReadAt,
	}
}

// ListNotificationsResponse 列表响应结构，包含未读数。
type ListNotificationsResponse struct {
	Notifications []NotificationDto `json:"notifications"`
	UnreadCount   int64             `json:"unread_count"`
	Page          int               `json:"page"`
	Limit         int               `json:"limit"`
}

// UnreadCountDto 未读数响应。
type UnreadCountDto struct {
	UnreadCount int64 `json:"unread_count"`
}

// MarkAllReadDto 全部已读响应。
type MarkAllReadDto struct {
	Updated int64 `json:"updated"`
}
