package service

import (
	"sort"

	"blog-service/ddd/domain/entity"
)

const (
	recentWeight   = 0.7
	lifetimeWeight = 0.3
)

// TrendingEntry is one ranked article.
type TrendingEntry struct {
	Article     *entity.Article
	RecentViews int64
	Score       float64
}

// TrendingScore blends recent-window views with lifetime views.
func TrendingScore(recent, total int64) float64 {
	return float64(recent)*recentWeight + float64(total)*lifetimeWeight
}

// RankTrending scores articles with their recent view counts and sorts them by
// score, then lifetime views, then most recent publication.
func RankTrending(articles []*entity.Article, recent map[uint64]int64) []TrendingEntry {
	entries := make([]TrendingEntry, 0, len(articles))
	for _, a := range articles {
		r := recent[a.ID]
		entries = append(entries, TrendingEntry{Article: a, RecentViews: r, Score: TrendingScore(r, a.Views)})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return byViewsThenPublished(entries[i].Article, entries[j].Article)
	})
	return entries
}

// RankByViews is the degraded ordering used when recent counts are unavailable.
func RankByViews(articles []*entity.Article) []TrendingEntry {
	entries := make([]TrendingEntry, 0, len(articles))
	for _, a := range articles {
		entries = append(entries, TrendingEntry{Article: a})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return byViewsThenPublished(entries[i].Article, entries[j].Article)
	})
	return entries
}

func byViewsThenPublished(a, b *entity.Article) bool {
	if a.Views != b.Views {
		return a.Views > b.Views
	}
	pa, pb := a.PublishedAt(), b.PublishedAt()
	switch {
	case pa == nil:
		return false
	case pb == nil:
		return true
	}
	return pa.After(*pb)
}
