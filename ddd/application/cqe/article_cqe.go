package cqe

import (
	"encoding/json"
	"strings"

	"blog-service/ddd/domain/entity"
	"blog-service/pkg/errno"
	"blog-service/pkg/jsonx"
)

// CreateArticleReq 创建文章请求。
type CreateArticleReq struct {
	Title           string          `json:"title"`
	Body            string          `json:"body"`
	Excerpt         string          `json:"excerpt"`
	FeaturedImage   string          `json:"featured_image"`
	MetaTitle       string          `json:"meta_title"`
	MetaDescription string          `json:"meta_description"`
	Tags            json.RawMessage `json:"tags"`
	IsFeatured      bool            `json:"is_featured"`
	IsNews          bool            `json:"is_news"`
	NewsType        string          `json:"news_type"`
	TargetCountries json.RawMessage `json:"target_countries"`
	Approved        *bool           `json:"approved"`
}

// ToArticle validates the request and builds a new article. Workflow fields
// are left for the caller.
func (r *CreateArticleReq) ToArticle() (*entity.Article, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return nil, errno.InvalidParam("title")
	}
	newsType, ok := entity.ParseNewsType(r.NewsType)
	if !ok {
		return nil, errno.InvalidParam("news_type")
	}
	a := &entity.Article{
		Title:           title,
		Body:            strings.TrimSpace(r.Body),
		Excerpt:         strings.TrimSpace(r.Excerpt),
		FeaturedImage:   strings.TrimSpace(r.FeaturedImage),
		MetaTitle:       strings.TrimSpace(r.MetaTitle),
		MetaDescription: strings.TrimSpace(r.MetaDescription),
		Tags:            ParseTags(r.Tags),
		IsFeatured:      r.IsFeatured,
		IsNews:          r.IsNews,
		NewsType:        newsType,
		TargetCountries: ParseTargetCountries(r.TargetCountries),
	}
	a.NormalizeClassification()
	return a, nil
}

// RequestedApproval 请求中的审核意图，缺省为 false。
func (r *CreateArticleReq) RequestedApproval() bool {
	return r.Approved != nil && *r.Approved
}

// UpdateArticleReq 更新文章请求，未出现的字段保持原值。
type UpdateArticleReq struct {
	Title                 *string         `json:"title"`
	Body                  *string         `json:"body"`
	Excerpt               *string         `json:"excerpt"`
	FeaturedImage         *string         `json:"featured_image"`
	FeaturedImageUploaded bool            `json:"featured_image_uploaded"`
	MetaTitle             *string         `json:"meta_title"`
	MetaDescription       *string         `json:"meta_description"`
	Tags                  json.RawMessage `json:"tags"`
	IsFeatured            *bool           `json:"is_featured"`
	IsNews                *bool           `json:"is_news"`
	NewsType              *string         `json:"news_type"`
	TargetCountries       json.RawMessage `json:"target_countries"`
	Approved              *bool           `json:"approved"`
}

// ToPatch validates the request and converts it into a domain patch.
func (r *UpdateArticleReq) ToPatch() (*entity.ArticlePatch, error) {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return nil, errno.InvalidParam("title")
	}
	p := &entity.ArticlePatch{
		Title:            r.Title,
		Body:             r.Body,
		Excerpt:          r.Excerpt,
		FeaturedImage:    r.FeaturedImage,
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
		IsFeatured:       r.IsFeatured,
		IsNews:           r.IsNews,
		NewImageUploaded: r.FeaturedImageUploaded,
		Approved:         r.Approved,
	}
	if r.NewsType != nil {
		nt, ok := entity.ParseNewsType(*r.NewsType)
		if !ok {
			return nil, errno.InvalidParam("news_type")
		}
		p.NewsType = &nt
	}
	if present(r.Tags) {
		tags := ParseTags(r.Tags)
		p.Tags = &tags
	}
	if present(r.TargetCountries) {
		countries := ParseTargetCountries(r.TargetCountries)
		p.TargetCountries = &countries
	}
	return p, nil
}

// ParseTags accepts a JSON list (or a JSON string wrapping one); anything
// else yields an empty list.
func ParseTags(raw json.RawMessage) []string {
	list, ok := jsonx.DecodeStringList(raw)
	if !ok {
		return []string{}
	}
	return list
}

// ParseTargetCountries accepts a JSON list (or a JSON string wrapping one);
// a malformed payload yields nil.
func ParseTargetCountries(raw json.RawMessage) []string {
	list, ok := jsonx.DecodeStringList(raw)
	if !ok {
		return nil
	}
	for i := range list {
		list[i] = strings.ToUpper(list[i])
	}
	return list
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0
}

// ListArticlesReq 公开文章列表查询。
type ListArticlesReq struct {
	Search string `form:"search"`
	Tag    string `form:"tag"`
	Limit  int    `form:"limit"`
}

// TrendingReq 热门文章查询。
type TrendingReq struct {
	Limit int `form:"limit"`
}

// NormalizeLimit clamps limit into [1, max], using def when unset.
func NormalizeLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}
