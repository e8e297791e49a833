package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/infrastructure/database/dao"
	"blog-service/ddd/infrastructure/database/po"
)

type viewEventRepositoryImpl struct {
	dao *dao.ArticleViewDao
}

func NewViewEventRepository() drepo.ViewEventRepository {
	return &viewEventRepositoryImpl{dao: dao.NewArticleViewDao()}
}

func NewViewEventRepositoryWithDB(db *gorm.DB) drepo.ViewEventRepository {
	return &viewEventRepositoryImpl{dao: dao.NewArticleViewDaoWithDB(db)}
}

func (r *viewEventRepositoryImpl) Create(ctx context.Context, ev *entity.ViewEvent) error {
	p := &po.ArticleView{
		ArticleID: ev.ArticleID,
		IPAddress: ev.Fingerprint,
		UserID:    ev.ViewerID,
		UserAgent: ev.UserAgent,
		SessionID: ev.SessionID,
		ViewedAt:  ev.CreatedAt,
	}
	if err := r.dao.Create(ctx, p); err != nil {
		return err
	}
	ev.ID = p.ID
	return nil
}

func (r *viewEventRepositoryImpl) ExistsSince(ctx context.Context, articleID uint64, fingerprint string, since time.Time) (bool, error) {
	return r.dao.ExistsSince(ctx, articleID, fingerprint, since)
}

func (r *viewEventRepositoryImpl) DeleteByArticle(ctx context.Context, articleID uint64) error {
	return r.dao.DeleteByArticle(ctx, articleID)
}

func (r *viewEventRepositoryImpl) CountSince(ctx context.Context, articleIDs []uint64, since time.Time) (map[uint64]int64, error) {
	return r.dao.CountSince(ctx, articleIDs, since)
}

func (r *viewEventRepositoryImpl) Stats(ctx context.Context, articleID uint64, since time.Time) (*drepo.ViewStats, error) {
	distinct, err := r.dao.Distinct(ctx, articleID)
	if err != nil {
		return nil, err
	}
	rows, err := r.dao.Daily(ctx, articleID, since)
	if err != nil {
		return nil, err
	}
	daily := make([]entity.DailyViews, 0, len(rows))
	for _, row := range rows {
		daily = append(daily, entity.DailyViews{Day: row.Day, Views: row.Views})
	}
	return &drepo.ViewStats{
		UniqueFingerprints: distinct.UniqueFingerprints,
		AuthenticatedUsers: distinct.AuthenticatedUsers,
		Daily:              daily,
	}, nil
}
