package app

import (
	"errors"
	"testing"
	"time"

	"blog-service/ddd/application/cqe"
	"blog-service/ddd/domain/entity"
	"blog-service/pkg/errno"
)

func newViewFixture(t *testing.T, withCache bool) (*fixture, ViewApp) {
	t.Helper()
	f := newFixture()
	article := &entity.Article{ID: 42, Title: "Forty Two", Slug: "forty-two", Views: 10}
	article.SetApproval(true, t0)
	f.articles.put(article)

	deps := ViewAppDeps{Articles: f.articles, Views: f.views, Now: f.clock.Now}
	if withCache {
		deps.Dedup = &memDedup{now: f.clock.Now}
	}
	return f, NewViewApp(deps)
}

func viewCmd(fp string) *cqe.RecordViewCmd {
	return &cqe.RecordViewCmd{ArticleID: 42, Fingerprint: fp, UserAgent: "test", SessionID: "s1"}
}

func TestRecordViewDedupWithinHour(t *testing.T) {
	for _, withCache := range []bool{false, true} {
		f, app := newViewFixture(t, withCache)

		first, err := app.RecordView(ctxBg, viewCmd("203.0.113.5"))
		if err != nil {
			t.Fatal(err)
		}
		if !first.Counted || first.Views != 11 {
			t.Fatalf("cache=%v first view = %+v", withCache, first)
		}

		f.clock.Advance(10 * time.Minute)
		second, err := app.RecordView(ctxBg, viewCmd("203.0.113.5"))
		if err != nil {
			t.Fatal(err)
		}
		if second.Counted || second.Views != 11 {
			t.Fatalf("cache=%v second view = %+v", withCache, second)
		}
		if f.views.count(42) != 1 {
			t.Fatalf("cache=%v events = %d", withCache, f.views.count(42))
		}

		other, err := app.RecordView(ctxBg, viewCmd("198.51.100.7"))
		if err != nil || other.Views != 12 {
			t.Fatalf("cache=%v distinct viewer = %+v err=%v", withCache, other, err)
		}

		f.clock.Advance(time.Hour)
		later, err := app.RecordView(ctxBg, viewCmd("203.0.113.5"))
		if err != nil || !later.Counted || later.Views != 13 {
			t.Fatalf("cache=%v view after window = %+v err=%v", withCache, later, err)
		}
	}
}

func TestRecordViewCacheOutageFallsBackToStore(t *testing.T) {
	f := newFixture()
	article := &entity.Article{ID: 42, Views: 0}
	f.articles.put(article)
	app := NewViewApp(ViewAppDeps{
		Articles: f.articles,
		Views:    f.views,
		Dedup:    &memDedup{now: f.clock.Now, err: errStoreDown},
		Now:      f.clock.Now,
	})
	for i := 0; i < 3; i++ {
		if _, err := app.RecordView(ctxBg, viewCmd("10.0.0.1")); err != nil {
			t.Fatal(err)
		}
	}
	if got := f.articles.get(42).Views; got != 1 {
		t.Fatalf("views = %d, want 1", got)
	}
}

func TestRecordViewMissingArticle(t *testing.T) {
	_, app := newViewFixture(t, false)
	_, err := app.RecordView(ctxBg, &cqe.RecordViewCmd{ArticleID: 7, Fingerprint: "x"})
	if !errors.Is(err, errno.ErrArticleNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestViewsAreMonotonic(t *testing.T) {
	f, app := newViewFixture(t, true)
	last := int64(0)
	for i := 0; i < 20; i++ {
		res, err := app.RecordView(ctxBg, viewCmd([]string{"a", "b", "c"}[i%3]))
		if err != nil {
			t.Fatal(err)
		}
		if res.Views < last {
			t.Fatalf("views decreased from %d to %d", last, res.Views)
		}
		last = res.Views
		f.clock.Advance(25 * time.Minute)
	}
}

func TestGetAnalytics(t *testing.T) {
	f, app := newViewFixture(t, false)
	uid := uint64(77)
	_, _ = app.RecordView(ctxBg, &cqe.RecordViewCmd{ArticleID: 42, Fingerprint: "1.1.1.1", ViewerID: &uid})
	_, _ = app.RecordView(ctxBg, viewCmd("2.2.2.2"))
	f.clock.Advance(-48 * time.Hour)
	_, _ = app.RecordView(ctxBg, viewCmd("3.3.3.3"))
	f.clock.Advance(48 * time.Hour)

	if _, err := app.GetAnalytics(ctxBg, outsider, 42); !errors.Is(err, errno.ErrForbidden) {
		t.Fatalf("outsider analytics err = %v", err)
	}
	if _, err := app.GetAnalytics(ctxBg, nil, 42); !errors.Is(err, errno.ErrUnauthorized) {
		t.Fatalf("anonymous analytics err = %v", err)
	}

	got, err := app.GetAnalytics(ctxBg, contentMgr, 42)
	if err != nil {
		t.Fatal(err)
	}
	if got.TotalViews != 13 || got.UniqueViewers != 3 || got.AuthenticatedUsers != 1 {
		t.Fatalf("analytics = %+v", got)
	}
	if len(got.Daily) != 30 {
		t.Fatalf("daily buckets = %d", len(got.Daily))
	}
	if got.Daily[0].Date != "2024-06-01" || got.Daily[0].Views != 2 {
		t.Fatalf("today bucket = %+v", got.Daily[0])
	}
	if got.Daily[2].Date != "2024-05-30" || got.Daily[2].Views != 1 {
		t.Fatalf("two days ago bucket = %+v", got.Daily[2])
	}
	if got.Daily[29].Date != "2024-05-03" {
		t.Fatalf("oldest bucket = %+v", got.Daily[29])
	}

	f.views.failStats = true
	if _, err := app.GetAnalytics(ctxBg, admin1, 42); !errors.Is(err, errno.ErrDependency) {
		t.Fatalf("stats failure err = %v", err)
	}
}
