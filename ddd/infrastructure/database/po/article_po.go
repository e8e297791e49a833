package po

import "time"

// Article 持久化对象，对应 articles 表。tags 与 target_countries 以 JSON 文本存储。
type Article struct {
	ID              uint64     `gorm:"column:id;primaryKey;autoIncrement"`
	Slug            string     `gorm:"column:slug;size:191;not null;uniqueIndex"`
	Title           string     `gorm:"column:title;size:255;not null"`
	Body            string     `gorm:"column:body;type:text"`
	Excerpt         string     `gorm:"column:excerpt;type:text"`
	FeaturedImage   string     `gorm:"column:featured_image;size:512"`
	MetaTitle       string     `gorm:"column:meta_title;size:255"`
	MetaDescription string     `gorm:"column:meta_description;size:512"`
	Tags            string     `gorm:"column:tags;type:text"`
	IsFeatured      bool       `gorm:"column:is_featured;not null;default:false"`
	IsNews          bool       `gorm:"column:is_news;not null;default:false"`
	NewsType        string     `gorm:"column:news_type;size:32;not null;default:general"`
	TargetCountries *string    `gorm:"column:target_countries;type:text"`
	AuthorID        uint64     `gorm:"column:author_id;index"`
	Status          string     `gorm:"column:status;size:16;not null;default:draft;index:idx_articles_status_approved,priority:1"`
	Approved        bool       `gorm:"column:approved;not null;default:false;index:idx_articles_status_approved,priority:2"`
	PublishedAt     *time.Time `gorm:"column:published_at"`
	Views           int64      `gorm:"column:views;not null;default:0"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (Article) TableName() string {
	return "articles"
}
