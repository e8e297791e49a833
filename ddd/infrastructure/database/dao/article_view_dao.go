package dao

import (
	"context"
	"time"

	"gorm.io/gorm"

	"blog-service/ddd/infrastructure/database/po"
	"blog-service/internal/resource"
)

type ArticleViewDao struct {
	db      *gorm.DB
	queries ViewQueries
}

func NewArticleViewDao() *ArticleViewDao {
	return &ArticleViewDao{db: resource.MainDB()}
}

func NewArticleViewDaoWithDB(db *gorm.DB) *ArticleViewDao {
	return &ArticleViewDao{db: db}
}

func (d *ArticleViewDao) Create(ctx context.Context, p *po.ArticleView) error {
	return d.db.WithContext(ctx).Create(p).Error
}

func (d *ArticleViewDao) ExistsSince(ctx context.Context, articleID uint64, ip string, since time.Time) (bool, error) {
	var ids []uint64
	err := d.db.WithContext(ctx).
		Model(&po.ArticleView{}).
		Where("article_id = ? AND ip_address = ? AND viewed_at > ?", articleID, ip, since).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (d *ArticleViewDao) DeleteByArticle(ctx context.Context, articleID uint64) error {
	return d.db.WithContext(ctx).Where("article_id = ?", articleID).Delete(&po.ArticleView{}).Error
}

type articleCountRow struct {
	ArticleID uint64
	Views     int64
}

func (d *ArticleViewDao) CountSince(ctx context.Context, articleIDs []uint64, since time.Time) (map[uint64]int64, error) {
	out := make(map[uint64]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return out, nil
	}
	query, args, err := d.queries.RecentCounts(articleIDs, since)
	if err != nil {
		return nil, err
	}
	var rows []articleCountRow
	if err := d.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.ArticleID] = r.Views
	}
	return out, nil
}

// DistinctRow 去重统计结果。
type DistinctRow struct {
	UniqueFingerprints int64
	AuthenticatedUsers int64
}

func (d *ArticleViewDao) Distinct(ctx context.Context, articleID uint64) (*DistinctRow, error) {
	query, args, err := d.queries.DistinctViewers(articleID)
	if err != nil {
		return nil, err
	}
	var row DistinctRow
	if err := d.db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// DailyRow 按天聚合的浏览数。
type DailyRow struct {
	Day   time.Time
	Views int64
}

func (d *ArticleViewDao) Daily(ctx context.Context, articleID uint64, since time.Time) ([]DailyRow, error) {
	query, args, err := d.queries.DailySeries(articleID, since)
	if err != nil {
		return nil, err
	}
	var rows []DailyRow
	if err := d.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
