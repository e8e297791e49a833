package dto

// ViewResultDto 浏览上报结果。
type ViewResultDto struct {
	ArticleID uint64 `json:"article_id"`
	Views     int64  `json:"views"`
	Counted   bool   `json:"counted"`
}

// DailyViewsDto 单日浏览数，Date 格式为 2006-01-02。
type DailyViewsDto struct {
	Date  string `json:"date"`
	Views int64  `json:"views"`
}

// AnalyticsDto 文章浏览统计，Daily 按日期倒序。
type AnalyticsDto struct {
	ArticleID          uint64          `json:"article_id"`
	TotalViews         int64           `json:"total_views"`
	UniqueViewers      int64           `json:"unique_viewers"`
	AuthenticatedUsers int64           `json:"authenticated_viewers"`
	Daily              []DailyViewsDto `json:"daily"`
}
