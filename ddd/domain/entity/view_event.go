package entity

import "time"

// ViewEvent 一次被接受的文章浏览记录，创建后不可变。
type ViewEvent struct {
	ID          uint64
	ArticleID   uint64
	Fingerprint string
	ViewerID    *uint64
	UserAgent   string
	SessionID   string
	CreatedAt   time.Time
}

// DailyViews 按天聚合的浏览数。
type DailyViews struct {
	Day   time.Time
	Views int64
}

// ViewAnalytics 文章浏览统计。
type ViewAnalytics struct {
	ArticleID         uint64
	TotalViews        int64
	UniqueViewers     int64
	AuthenticatedUser int64
	Daily             []DailyViews
}
