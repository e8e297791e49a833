package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"blog-service/ddd/application/cqe"
	"blog-service/ddd/application/dto"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/domain/service"
	"blog-service/ddd/infrastructure/cache"
	"blog-service/ddd/infrastructure/database/persistence"
	"blog-service/internal/resource"
	"blog-service/pkg/assert"
	"blog-service/pkg/config"
	"blog-service/pkg/logger"
)

// TrendingApp 热门文章排序。
type TrendingApp interface {
	ListTrending(ctx context.Context, req *cqe.TrendingReq) []dto.TrendingArticleDto
}

// TrendingAppDeps 热门排序的依赖；Cache 可为空。
type TrendingAppDeps struct {
	Articles drepo.ArticleRepository
	Views    drepo.ViewEventRepository
	Cache    drepo.BlobCache
	Config   config.BlogConfig
	Now      func() time.Time
}

type trendingAppImpl struct {
	articles drepo.ArticleRepository
	views    drepo.ViewEventRepository
	cache    drepo.BlobCache
	cfg      config.BlogConfig
	now      func() time.Time
}

var (
	trendingAppOnce sync.Once
	trendingApp     TrendingApp
)

func DefaultTrendingApp() TrendingApp {
	trendingAppOnce.Do(func() {
		assert.NotCircular()
		trendingApp = NewTrendingApp(TrendingAppDeps{
			Articles: persistence.NewArticleRepository(),
			Views:    persistence.NewViewEventRepository(),
			Cache:    cache.NewRedisBlobCache(resource.Redis()),
			Config:   config.GetGlobalConfig().Blog,
		})
	})
	return trendingApp
}

func NewTrendingApp(deps TrendingAppDeps) TrendingApp {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &trendingAppImpl{
		articles: deps.Articles,
		views:    deps.Views,
		cache:    deps.Cache,
		cfg:      deps.Config.Normalized(),
		now:      now,
	}
}

func trendingCacheKey(limit int) string {
	return fmt.Sprintf("trending:%d", limit)
}

// ListTrending never fails: store errors yield an empty list and a failed
// recent-window query degrades to ordering by lifetime views.
func (a *trendingAppImpl) ListTrending(ctx context.Context, req *cqe.TrendingReq) []dto.TrendingArticleDto {
	if req == nil {
		req = &cqe.TrendingReq{}
	}
	limit := cqe.NormalizeLimit(req.Limit, a.cfg.DefaultListLimit, a.cfg.MaxListLimit)
	log := logger.WithContext(ctx)

	if cached, ok := a.fromCache(ctx, limit); ok {
		return cached
	}

	articles, err := a.articles.ListPublished(ctx, 0)
	if err != nil {
		log.Warnf("trending: list published failed error=%v", err)
		return []dto.TrendingArticleDto{}
	}
	ids := make([]uint64, 0, len(articles))
	for _, art := range articles {
		ids = append(ids, art.ID)
	}

	var entries []service.TrendingEntry
	recent, err := a.views.CountSince(ctx, ids, a.now().Add(-a.cfg.TrendingWindow))
	if err != nil {
		log.Warnf("trending: recent views unavailable, ranking by total views error=%v", err)
		entries = service.RankByViews(articles)
	} else {
		entries = service.RankTrending(articles, recent)
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := dto.NewTrendingDtos(entries)
	if err == nil {
		a.toCache(ctx, limit, out)
	}
	return out
}

func (a *trendingAppImpl) fromCache(ctx context.Context, limit int) ([]dto.TrendingArticleDto, bool) {
	if a.cache == nil || a.cfg.TrendingCacheTTL <= 0 {
		return nil, false
	}
	payload, ok, err := a.cache.Get(ctx, trendingCacheKey(limit))
	if err != nil {
		logger.WithContext(ctx).Warnf("trending: cache read failed error=%v", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var out []dto.TrendingArticleDto
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (a *trendingAppImpl) toCache(ctx context.Context, limit int, out []dto.TrendingArticleDto) {
	if a.cache == nil || a.cfg.TrendingCacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(out)
	if err != nil {
		return
	}
	if err := a.cache.Set(ctx, trendingCacheKey(limit), payload, a.cfg.TrendingCacheTTL); err != nil {
		logger.WithContext(ctx).Warnf("trending: cache write failed error=%v", err)
	}
}
