package entity

import "time"

// NotificationType 通知类型。
type NotificationType string

const (
	NotificationArticleCreated NotificationType = "article_created"
	NotificationArticleUpdated NotificationType = "article_updated"
)

// RelatedTypeArticle is the related_type stamped on article notifications.
const RelatedTypeArticle = "article"

// Notification 聚合根，表示一条站内通知。
type Notification struct {
	ID          uint64
	UserID      uint64
	Type        NotificationType
	Title       string
	Message     string
	RelatedID   *uint64
	RelatedType string
	IsRead      bool
	CreatedAt   time.Time
	ReadAt      *time.Time
}

// NewArticleNotification 创建一条指向文章的未读通知。
func NewArticleNotification(userID uint64, typ NotificationType, title, message string, articleID uint64) *Notification {
	id := articleID
	return &Notification{
		UserID:      userID,
		Type:        typ,
		Title:       title,
		Message:     message,
		RelatedID:   &id,
		RelatedType: RelatedTypeArticle,
	}
}

// MarkRead 标记为已读；已读通知保持不变。
func (n *Notification) MarkRead(now time.Time) bool {
	if n.IsRead {
		return false
	}
	n.IsRead = true
	t := now
	n.ReadAt = &t
	return true
}
