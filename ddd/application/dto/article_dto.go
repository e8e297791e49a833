package dto

import (
	"time"

	"blog-service/ddd/domain/entity"
	"blog-service/ddd/domain/service"
)

// ArticleDto 文章视图模型。
type ArticleDto struct {
	ID              uint64     `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Body            string     `json:"body"`
	Excerpt         string     `json:"excerpt"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	MetaTitle       string     `json:"meta_title,omitempty"`
	MetaDescription string     `json:"meta_description,omitempty"`
	Tags            []string   `json:"tags"`
	IsFeatured      bool       `json:"is_featured"`
	IsNews          bool       `json:"is_news"`
	NewsType        string     `json:"news_type"`
	TargetCountries []string   `json:"target_countries"`
	AuthorID        uint64     `json:"author_id"`
	Status          string     `json:"status"`
	Approved        bool       `json:"approved"`
	PublishedAt     *time.Time `json:"published_at"`
	Views           int64      `json:"views"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// NewArticleDto 由领域对象构建视图模型。
func NewArticleDto(a *entity.Article) ArticleDto {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return ArticleDto{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		Body:            a.Body,
		Excerpt:         a.Excerpt,
		FeaturedImage:   a.FeaturedImage,
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		Tags:            tags,
		IsFeatured:      a.IsFeatured,
		IsNews:          a.IsNews,
		NewsType:        string(a.NewsType),
		TargetCountries: a.TargetCountries,
		AuthorID:        a.AuthorID,
		Status:          string(a.Status()),
		Approved:        a.Approved(),
		PublishedAt:     a.PublishedAt(),
		Views:           a.Views,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// NewArticleDtos 批量转换。
func NewArticleDtos(list []*entity.Article) []ArticleDto {
	out := make([]ArticleDto, 0, len(list))
	for _, a := range list {
		out = append(out, NewArticleDto(a))
	}
	return out
}

// TrendingArticleDto 热门文章及其得分。
type TrendingArticleDto struct {
	ArticleDto
	RecentViews   int64   `json:"recent_views"`
	TrendingScore float64 `json:"trending_score"`
}

// NewTrendingDtos 转换排序结果。
func NewTrendingDtos(entries []service.TrendingEntry) []TrendingArticleDto {
	out := make([]TrendingArticleDto, 0, len(entries))
	for _, e := range entries {
		out = append(out, TrendingArticleDto{
			ArticleDto:    NewArticleDto(e.Article),
			RecentViews:   e.RecentViews,
			TrendingScore: e.Score,
		})
	}
	return out
}
