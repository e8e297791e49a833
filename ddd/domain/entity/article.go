package entity

import (
	"strings"
	"time"
)

// ArticleStatus 文章发布状态。
type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
)

// NewsType 新闻类型。
type NewsType string

const (
	NewsTypeGeneral         NewsType = "general"
	NewsTypeCountrySpecific NewsType = "country_specific"
)

// ParseNewsType validates a client supplied news type. Empty means general.
func ParseNewsType(s string) (NewsType, bool) {
	switch NewsType(strings.TrimSpace(s)) {
	case "", NewsTypeGeneral:
		return NewsTypeGeneral, true
	case NewsTypeCountrySpecific:
		return NewsTypeCountrySpecific, true
	}
	return "", false
}

// Article 聚合根。
//
// Status and Approved are only written through SetApproval so that
// status == published holds exactly when approved is true.
type Article struct {
	ID              uint64
	Slug            string
	Title           string
	Body            string
	Excerpt         string
	FeaturedImage   string
	MetaTitle       string
	MetaDescription string
	Tags            []string
	IsFeatured      bool
	IsNews          bool
	NewsType        NewsType
	TargetCountries []string
	AuthorID        uint64
	Views           int64
	CreatedAt       time.Time
	UpdatedAt       time.Time

	status      ArticleStatus
	approved    bool
	publishedAt *time.Time
}

// Status 当前状态。
func (a *Article) Status() ArticleStatus {
	if a.status == "" {
		return StatusDraft
	}
	return a.status
}

// Approved 是否已审核通过。
func (a *Article) Approved() bool { return a.approved }

// PublishedAt 首次发布时间，未发布时为 nil。
func (a *Article) PublishedAt() *time.Time { return a.publishedAt }

// IsPublic reports whether the article is visible on the public surface.
func (a *Article) IsPublic() bool {
	return a.Status() == StatusPublished && a.approved
}

// SetApproval moves the article to published+approved or draft+unapproved.
// published_at is stamped with now the first time the article is published
// and is never overwritten afterwards.
func (a *Article) SetApproval(approved bool, now time.Time) {
	a.approved = approved
	if !approved {
		a.status = StatusDraft
		return
	}
	a.status = StatusPublished
	if a.publishedAt == nil {
		t := now
		a.publishedAt = &t
	}
}

// RestoreWorkflow rehydrates workflow fields from storage. A stored pair that
// violates the status/approved invariant is read as draft+unapproved.
func (a *Article) RestoreWorkflow(status ArticleStatus, approved bool, publishedAt *time.Time) {
	a.publishedAt = publishedAt
	if approved && status == StatusPublished {
		a.status, a.approved = StatusPublished, true
		return
	}
	a.status, a.approved = StatusDraft, false
}

// NormalizeClassification clears target countries unless the article is
// country-specific news.
func (a *Article) NormalizeClassification() {
	if a.NewsType == "" {
		a.NewsType = NewsTypeGeneral
	}
	if a.NewsType != NewsTypeCountrySpecific {
		a.TargetCountries = nil
	}
}
