package app

import (
	"context"
	"sync"
	"time"

	"blog-service/ddd/application/cqe"
	"blog-service/ddd/application/dto"
	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/domain/service"
	"blog-service/ddd/infrastructure/cache"
	"blog-service/ddd/infrastructure/database/persistence"
	"blog-service/internal/resource"
	"blog-service/pkg/assert"
	"blog-service/pkg/config"
	"blog-service/pkg/errno"
	"blog-service/pkg/logger"
)

const dayLayout = "2006-01-02"

// ViewApp 浏览去重计数与统计。
type ViewApp interface {
	RecordView(ctx context.Context, cmd *cqe.RecordViewCmd) (*dto.ViewResultDto, error)
	GetAnalytics(ctx context.Context, actor *entity.Actor, articleID uint64) (*dto.AnalyticsDto, error)
}

// ViewAppDeps 浏览应用服务的依赖；Dedup 可为空。
type ViewAppDeps struct {
	Articles drepo.ArticleRepository
	Views    drepo.ViewEventRepository
	Dedup    drepo.ViewDedupCache
	Config   config.BlogConfig
	Now      func() time.Time
}

type viewAppImpl struct {
	articles drepo.ArticleRepository
	views    drepo.ViewEventRepository
	dedup    drepo.ViewDedupCache
	cfg      config.BlogConfig
	now      func() time.Time
}

var (
	viewAppOnce sync.Once
	viewApp     ViewApp
)

func DefaultViewApp() ViewApp {
	viewAppOnce.Do(func() {
		assert.NotCircular()
		viewApp = NewViewApp(ViewAppDeps{
			Articles: persistence.NewArticleRepository(),
			Views:    persistence.NewViewEventRepository(),
			Dedup:    cache.NewRedisViewDedup(resource.Redis()),
			Config:   config.GetGlobalConfig().Blog,
		})
	})
	return viewApp
}

func NewViewApp(deps ViewAppDeps) ViewApp {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &viewAppImpl{
		articles: deps.Articles,
		views:    deps.Views,
		dedup:    deps.Dedup,
		cfg:      deps.Config.Normalized(),
		now:      now,
	}
}

// RecordView counts at most one view per (article, fingerprint) inside the
// dedup window. A repeated view returns the current counter unchanged.
func (a *viewAppImpl) RecordView(ctx context.Context, cmd *cqe.RecordViewCmd) (*dto.ViewResultDto, error) {
	article, err := a.articles.GetByID(ctx, cmd.ArticleID)
	if err != nil {
		return nil, errno.Dependency(err, "load article")
	}
	if article == nil {
		return nil, errno.ErrArticleNotFound
	}
	unchanged := &dto.ViewResultDto{ArticleID: article.ID, Views: article.Views}

	now := a.now()
	claimed := false
	if a.dedup != nil {
		ok, err := a.dedup.Claim(ctx, article.ID, cmd.Fingerprint, a.cfg.ViewDedupWindow)
		switch {
		case err != nil:
			logger.WithContext(ctx).Warnf("view: dedup cache unavailable, using store only article_id=%d error=%v", article.ID, err)
		case !ok:
			return unchanged, nil
		default:
			claimed = true
		}
	}

	seen, err := a.views.ExistsSince(ctx, article.ID, cmd.Fingerprint, now.Add(-a.cfg.ViewDedupWindow))
	if err != nil {
		a.release(ctx, claimed, article.ID, cmd.Fingerprint)
		return nil, errno.Dependency(err, "check recent views")
	}
	if seen {
		return unchanged, nil
	}

	ev := &entity.ViewEvent{
		ArticleID:   article.ID,
		Fingerprint: cmd.Fingerprint,
		ViewerID:    cmd.ViewerID,
		UserAgent:   cmd.UserAgent,
		SessionID:   cmd.SessionID,
		CreatedAt:   now,
	}
	if err := a.views.Create(ctx, ev); err != nil {
		a.release(ctx, claimed, article.ID, cmd.Fingerprint)
		return nil, errno.Dependency(err, "record view")
	}
	if err := a.articles.IncrementViews(ctx, article.ID); err != nil {
		return nil, errno.Dependency(err, "increment views")
	}

	views := article.Views + 1
	if fresh, err := a.articles.GetByID(ctx, article.ID); err == nil && fresh != nil {
		views = fresh.Views
	}
	return &dto.ViewResultDto{ArticleID: article.ID, Views: views, Counted: true}, nil
}

func (a *viewAppImpl) release(ctx context.Context, claimed bool, articleID uint64, fingerprint string) {
	if !claimed {
		return
	}
	if err := a.dedup.Release(ctx, articleID, fingerprint); err != nil {
		logger.WithContext(ctx).Warnf("view: release dedup marker failed article_id=%d error=%v", articleID, err)
	}
}

// GetAnalytics 返回浏览统计，最近的日期在前，无浏览的日期补零。
func (a *viewAppImpl) GetAnalytics(ctx context.Context, actor *entity.Actor, articleID uint64) (*dto.AnalyticsDto, error) {
	if actor == nil {
		return nil, errno.ErrUnauthorized
	}
	if !service.CanManage(actor) {
		return nil, errno.ErrForbidden
	}
	article, err := a.articles.GetByID(ctx, articleID)
	if err != nil {
		return nil, errno.Dependency(err, "load article")
	}
	if article == nil {
		return nil, errno.ErrArticleNotFound
	}

	days := a.cfg.AnalyticsDays
	now := a.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -(days - 1))

	stats, err := a.views.Stats(ctx, articleID, since)
	if err != nil {
		return nil, errno.Dependency(err, "load view stats")
	}
	byDay := make(map[string]int64, len(stats.Daily))
	for _, d := range stats.Daily {
		byDay[d.Day.Format(dayLayout)] += d.Views
	}
	daily := make([]dto.DailyViewsDto, 0, days)
	for i := 0; i < days; i++ {
		key := today.AddDate(0, 0, -i).Format(dayLayout)
		daily = append(daily, dto.DailyViewsDto{Date: key, Views: byDay[key]})
	}
	return &dto.AnalyticsDto{
		ArticleID:          article.ID,
		TotalViews:         article.Views,
		UniqueViewers:      stats.UniqueFingerprints,
		AuthenticatedUsers: stats.AuthenticatedUsers,
		Daily:              daily,
	}, nil
}
