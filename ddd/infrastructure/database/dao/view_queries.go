package dao

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const tableArticleViews = "article_views"

// ViewQueries builds the aggregate statements over article_views. Statements
// use ? placeholders, which gorm rebinds for the active dialect.
type ViewQueries struct{}

func (ViewQueries) RecentCounts(articleIDs []uint64, since time.Time) (string, []interface{}, error) {
	return sq.Select("article_id", "COUNT(*) AS views").
		From(tableArticleViews).
		Where(sq.Eq{"article_id": articleIDs}).
		Where(sq.GtOrEq{"viewed_at": since}).
		GroupBy("article_id").
		ToSql()
}

func (ViewQueries) DistinctViewers(articleID uint64) (string, []interface{}, error) {
	return sq.Select(
		"COUNT(DISTINCT ip_address) AS unique_fingerprints",
		"COUNT(DISTINCT user_id) AS authenticated_users",
	).
		From(tableArticleViews).
		Where(sq.Eq{"article_id": articleID}).
		ToSql()
}

func (ViewQueries) DailySeries(articleID uint64, since time.Time) (string, []interface{}, error) {
	return sq.Select("DATE(viewed_at) AS day", "COUNT(*) AS views").
		From(tableArticleViews).
		Where(sq.Eq{"article_id": articleID}).
		Where(sq.GtOrEq{"viewed_at": since}).
		GroupBy("DATE(viewed_at)").
		OrderBy("day DESC").
		ToSql()
}
