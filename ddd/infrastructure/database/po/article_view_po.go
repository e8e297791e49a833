package po

import "time"

// ArticleView 持久化对象，对应 article_views 表。
type ArticleView struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	ArticleID uint64    `gorm:"column:article_id;not null;index:idx_article_views_dedup,priority:1"`
	IPAddress string    `gorm:"column:ip_address;size:64;not null;index:idx_article_views_dedup,priority:2"`
	UserID    *uint64   `gorm:"column:user_id"`
	UserAgent string    `gorm:"column:user_agent;size:512"`
	SessionID string    `gorm:"column:session_id;size:128"`
	ViewedAt  time.Time `gorm:"column:viewed_at;not null;index:idx_article_views_dedup,priority:3"`
}

func (ArticleView) TableName() string {
	return "article_views"
}
