package dao

import (
	"testing"
	"time"
)

func TestViewQueries(t *testing.T) {
	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var q ViewQueries

	tests := []struct {
		name     string
		build    func() (string, []interface{}, error)
		wantSQL  string
		wantArgs int
	}{
		{
			name:     "recent counts",
			build:    func() (string, []interface{}, error) { return q.RecentCounts([]uint64{1, 2}, since) },
			wantSQL:  "SELECT article_id, COUNT(*) AS views FROM article_views WHERE article_id IN (?,?) AND viewed_at >= ? GROUP BY article_id",
			wantArgs: 3,
		},
		{
			name:     "distinct viewers",
			build:    func() (string, []interface{}, error) { return q.DistinctViewers(42) },
			wantSQL:  "SELECT COUNT(DISTINCT ip_address) AS unique_fingerprints, COUNT(DISTINCT user_id) AS authenticated_users FROM article_views WHERE article_id = ?",
			wantArgs: 1,
		},
		{
			name:     "daily series",
			build:    func() (string, []interface{}, error) { return q.DailySeries(42, since) },
			wantSQL:  "SELECT DATE(viewed_at) AS day, COUNT(*) AS views FROM article_views WHERE article_id = ? AND viewed_at >= ? GROUP BY DATE(viewed_at) ORDER BY day DESC",
			wantArgs: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.build()
			if err != nil {
				t.Fatal(err)
			}
			if sql != tt.wantSQL {
				t.Fatalf("sql =\n%s\nwant\n%s", sql, tt.wantSQL)
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("args = %v", args)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	if got := escapeLike(" 50%_off\\ "); got != `50\%\_off\\` {
		t.Fatalf("escapeLike() = %q", got)
	}
}
