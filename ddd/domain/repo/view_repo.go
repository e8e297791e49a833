package repo

import (
	"context"
	"time"

	"blog-service/ddd/domain/entity"
)

// ViewStats 浏览事件的聚合结果。
type ViewStats struct {
	UniqueFingerprints int64
	AuthenticatedUsers int64
	Daily              []entity.DailyViews
}

// ViewEventRepository 浏览事件仓储接口。
type ViewEventRepository interface {
	Create(ctx context.Context, ev *entity.ViewEvent) error
	ExistsSince(ctx context.Context, articleID uint64, fingerprint string, since time.Time) (bool, error)
	DeleteByArticle(ctx context.Context, articleID uint64) error
	// CountSince returns recent view counts keyed by article id; articles
	// without views are absent from the map.
	CountSince(ctx context.Context, articleIDs []uint64, since time.Time) (map[uint64]int64, error)
	Stats(ctx context.Context, articleID uint64, since time.Time) (*ViewStats, error)
}
