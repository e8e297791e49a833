package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"blog-service/ddd/application/app"
	"blog-service/ddd/application/cqe"
	"blog-service/ddd/application/dto"
	"blog-service/ddd/domain/entity"
	"blog-service/pkg/errno"
)

type stubIdentity map[uint64]*entity.Actor

func (s stubIdentity) ResolveActor(_ context.Context, id uint64) (*entity.Actor, error) {
	if a, ok := s[id]; ok {
		return a, nil
	}
	return nil, errno.ErrUnauthorized
}

type stubArticles struct {
	created  *cqe.CreateArticleReq
	updated  *cqe.UpdateArticleReq
	deleted  uint64
	actor    *entity.Actor
	listReq  *cqe.ListArticlesReq
	getErr   error
	writeErr error
}

func (s *stubArticles) Create(_ context.Context, actor *entity.Actor, req *cqe.CreateArticleReq) (*dto.ArticleDto, error) {
	s.actor, s.created = actor, req
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	return &dto.ArticleDto{ID: 1, Title: req.Title, Status: "draft"}, nil
}

func (s *stubArticles) Update(_ context.Context, actor *entity.Actor, id uint64, req *cqe.UpdateArticleReq) (*dto.ArticleDto, error) {
	s.actor, s.updated = actor, req
	if s.writeErr != nil {
		return nil, s.writeErr
	}
	return &dto.ArticleDto{ID: id}, nil
}

func (s *stubArticles) Delete(_ context.Context, actor *entity.Actor, id uint64) error {
	s.actor, s.deleted = actor, id
	return s.writeErr
}

func (s *stubArticles) GetPublishedByID(_ context.Context, id uint64) (*dto.ArticleDto, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.ArticleDto{ID: id}, nil
}

func (s *stubArticles) GetPublishedBySlug(_ context.Context, slug string) (*dto.ArticleDto, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &dto.ArticleDto{ID: 9, Slug: slug}, nil
}

func (s *stubArticles) ListPublished(_ context.Context, req *cqe.ListArticlesReq) []dto.ArticleDto {
	s.listReq = req
	return []dto.ArticleDto{}
}

func (s *stubArticles) GetForAdmin(_ context.Context, actor *entity.Actor, id uint64) (*dto.ArticleDto, error) {
	s.actor = actor
	return &dto.ArticleDto{ID: id}, nil
}

func (s *stubArticles) ListForAdmin(_ context.Context, actor *entity.Actor) ([]dto.ArticleDto, error) {
	s.actor = actor
	return []dto.ArticleDto{{ID: 1}, {ID: 2}}, nil
}

type stubTrending struct{ limit int }

func (s *stubTrending) ListTrending(_ context.Context, req *cqe.TrendingReq) []dto.TrendingArticleDto {
	s.limit = req.Limit
	return []dto.TrendingArticleDto{}
}

type stubViews struct {
	cmd *cqe.RecordViewCmd
	err error
}

func (s *stubViews) RecordView(_ context.Context, cmd *cqe.RecordViewCmd) (*dto.ViewResultDto, error) {
	s.cmd = cmd
	if s.err != nil {
		return nil, s.err
	}
	return &dto.ViewResultDto{ArticleID: cmd.ArticleID, Views: 1, Counted: true}, nil
}

func (s *stubViews) GetAnalytics(_ context.Context, _ *entity.Actor, id uint64) (*dto.AnalyticsDto, error) {
	return &dto.AnalyticsDto{ArticleID: id, Daily: []dto.DailyViewsDto{}}, nil
}

type stubNotifications struct {
	markedID uint64
	markErr  error
	listReq  *cqe.ListNotificationsReq
}

func (s *stubNotifications) NotifyApprovers(context.Context, *entity.Article, entity.NotificationType, *entity.Actor) *app.FanoutResult {
	return &app.FanoutResult{}
}

func (s *stubNotifications) ListNotifications(_ context.Context, _ *entity.Actor, req *cqe.ListNotificationsReq) (*dto.ListNotificationsResponse, error) {
	s.listReq = req
	return &dto.ListNotificationsResponse{Notifications: []dto.NotificationDto{}, UnreadCount: 2, Page: 1, Limit: 20}, nil
}

func (s *stubNotifications) UnreadCount(context.Context, *entity.Actor) (*dto.UnreadCountDto, error) {
	return &dto.UnreadCountDto{UnreadCount: 2}, nil
}

func (s *stubNotifications) MarkRead(_ context.Context, _ *entity.Actor, id uint64) error {
	s.markedID = id
	return s.markErr
}

func (s *stubNotifications) MarkAllRead(context.Context, *entity.Actor) (*dto.MarkAllReadDto, error) {
	return &dto.MarkAllReadDto{Updated: 3}, nil
}

var testActors = stubIdentity{
	1: {ID: 1, Name: "Root", Role: entity.RoleAdmin},
	2: {ID: 2, Name: "Casey", Role: entity.RoleContentManager},
}

type fixture struct {
	router        *gin.Engine
	articles      *stubArticles
	trending      *stubTrending
	views         *stubViews
	notifications *stubNotifications
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		router:        gin.New(),
		articles:      &stubArticles{},
		trending:      &stubTrending{},
		views:         &stubViews{},
		notifications: &stubNotifications{},
	}
	group := f.router.Group("/api")
	newArticleController(f.articles, f.trending, testActors).RegisterOpenApi(group)
	newViewController(f.views, testActors).RegisterOpenApi(group)
	newNotificationController(f.notifications, testActors).RegisterOpenApi(group)
	return f
}

func (f *fixture) do(method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func asUser(id string) map[string]string {
	return map[string]string{headerUserID: id}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestPublicRoutes(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/blog/v1/articles?search=go&tag=news&limit=5", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if got := f.articles.listReq; got == nil || got.Search != "go" || got.Tag != "news" || got.Limit != 5 {
		t.Fatalf("list request = %+v", got)
	}

	if rec := f.do(http.MethodGet, "/api/blog/v1/articles/trending?limit=3", "", nil); rec.Code != http.StatusOK || f.trending.limit != 3 {
		t.Fatalf("trending status = %d limit = %d", rec.Code, f.trending.limit)
	}

	rec = f.do(http.MethodGet, "/api/blog/v1/articles/slug/hello-world", "", nil)
	if data := decodeBody(t, rec)["data"].(map[string]interface{}); data["slug"] != "hello-world" {
		t.Fatalf("slug lookup data = %v", data)
	}

	if rec := f.do(http.MethodGet, "/api/blog/v1/articles/abc", "", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("malformed id status = %d", rec.Code)
	}

	f.articles.getErr = errno.ErrArticleNotFound
	rec = f.do(http.MethodGet, "/api/blog/v1/articles/7", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing article status = %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["success"] != false || body["message"] != "Article not found" {
		t.Fatalf("missing article body = %v", body)
	}
}

func TestAdminRoutesRequireActor(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name   string
		header map[string]string
	}{
		{"no header", nil},
		{"malformed header", asUser("root")},
		{"unknown user", asUser("404")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/blog/v1/admin/articles", `{"title":"T","body":"B"}`, tc.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d", rec.Code)
			}
		})
	}
	if f.articles.created != nil {
		t.Fatal("create must not run without an actor")
	}
}

func TestAdminArticleLifecycle(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/blog/v1/admin/articles", `{"title":"Hello","body":"<p>Hi</p>","tags":["go"]}`, asUser("2"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d body = %s", rec.Code, rec.Body.String())
	}
	if f.articles.actor.ID != 2 || f.articles.created.Title != "Hello" {
		t.Fatalf("create got actor=%v req=%+v", f.articles.actor, f.articles.created)
	}

	if rec := f.do(http.MethodPost, "/api/blog/v1/admin/articles", `{"title":`, asUser("2")); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json status = %d", rec.Code)
	}

	rec = f.do(http.MethodPut, "/api/blog/v1/admin/articles/5", `{"approved":true}`, asUser("1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d", rec.Code)
	}
	if a := f.articles.updated.Approved; a == nil || !*a {
		t.Fatalf("approved flag not forwarded: %+v", f.articles.updated)
	}

	f.articles.writeErr = errno.ErrForbidden
	if rec := f.do(http.MethodDelete, "/api/blog/v1/admin/articles/5", "", asUser("2")); rec.Code != http.StatusForbidden {
		t.Fatalf("forbidden delete status = %d", rec.Code)
	}

	f.articles.writeErr = errno.Dependency(context.DeadlineExceeded, "delete article")
	if rec := f.do(http.MethodDelete, "/api/blog/v1/admin/articles/5", "", asUser("1")); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("store failure status = %d", rec.Code)
	}

	f.articles.writeErr = nil
	if rec := f.do(http.MethodDelete, "/api/blog/v1/admin/articles/5", "", asUser("1")); rec.Code != http.StatusOK || f.articles.deleted != 5 {
		t.Fatalf("delete status = %d id = %d", rec.Code, f.articles.deleted)
	}

	rec = f.do(http.MethodGet, "/api/blog/v1/admin/articles", "", asUser("1"))
	if data := decodeBody(t, rec)["data"].([]interface{}); len(data) != 2 {
		t.Fatalf("admin list = %v", data)
	}
}

func TestRecordView(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodPost, "/api/blog/v1/articles/3/view", "", map[string]string{
		"X-Forwarded-For": "203.0.113.5",
		"User-Agent":      "test-agent",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	cmd := f.views.cmd
	if cmd.ArticleID != 3 || cmd.Fingerprint == "" || cmd.ViewerID != nil || cmd.UserAgent != "test-agent" {
		t.Fatalf("cmd = %+v", cmd)
	}

	f.do(http.MethodPost, "/api/blog/v1/articles/3/view", `{"session_id":"s-1"}`, asUser("2"))
	if cmd := f.views.cmd; cmd.SessionID != "s-1" || cmd.ViewerID == nil || *cmd.ViewerID != 2 {
		t.Fatalf("cmd = %+v", cmd)
	}

	f.views.err = errno.ErrArticleNotFound
	if rec := f.do(http.MethodPost, "/api/blog/v1/articles/99/view", "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing article status = %d", rec.Code)
	}

	if rec := f.do(http.MethodGet, "/api/blog/v1/admin/articles/3/analytics", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous analytics status = %d", rec.Code)
	}
	if rec := f.do(http.MethodGet, "/api/blog/v1/admin/articles/3/analytics", "", asUser("1")); rec.Code != http.StatusOK {
		t.Fatalf("analytics status = %d", rec.Code)
	}
}

func TestNotificationRoutes(t *testing.T) {
	f := newFixture()

	rec := f.do(http.MethodGet, "/api/blog/v1/notifications?page=2&limit=10&unread_only=true", "", asUser("1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	if r := f.notifications.listReq; r.Page != 2 || r.Limit != 10 || !r.UnreadOnly {
		t.Fatalf("list req = %+v", r)
	}

	if rec := f.do(http.MethodGet, "/api/blog/v1/notifications/unread-count", "", asUser("1")); rec.Code != http.StatusOK {
		t.Fatalf("unread status = %d", rec.Code)
	}

	if rec := f.do(http.MethodPut, "/api/blog/v1/notifications/read-all", "", asUser("1")); rec.Code != http.StatusOK {
		t.Fatalf("read-all status = %d", rec.Code)
	}
	if f.notifications.markedID != 0 {
		t.Fatal("read-all must not hit the single mark-read route")
	}

	if rec := f.do(http.MethodPut, "/api/blog/v1/notifications/8/read", "", asUser("1")); rec.Code != http.StatusOK || f.notifications.markedID != 8 {
		t.Fatalf("mark read status = %d id = %d", rec.Code, f.notifications.markedID)
	}

	f.notifications.markErr = errno.ErrNotificationNotFound
	if rec := f.do(http.MethodPut, "/api/blog/v1/notifications/9/read", "", asUser("2")); rec.Code != http.StatusNotFound {
		t.Fatalf("foreign notification status = %d", rec.Code)
	}

	if rec := f.do(http.MethodGet, "/api/blog/v1/notifications", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous list status = %d", rec.Code)
	}
}
