package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
)

var errStoreDown = errors.New("store down")

var t0 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

// clock is a controllable time source.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock() *clock { return &clock{now: t0} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memArticles is an in-memory ArticleRepository. Stored values are copies so
// callers cannot mutate state behind the repository's back.
type memArticles struct {
	mu      sync.Mutex
	nextID  uint64
	rows    map[uint64]entity.Article
	failAll bool
}

func newMemArticles() *memArticles {
	return &memArticles{rows: map[uint64]entity.Article{}}
}

func (m *memArticles) Create(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	m.nextID++
	a.ID = m.nextID
	m.rows[a.ID] = *a
	return nil
}

// put stores a as-is, keeping its id.
func (m *memArticles) put(a *entity.Article) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID > m.nextID {
		m.nextID = a.ID
	}
	m.rows[a.ID] = *a
}

func (m *memArticles) get(id uint64) *entity.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok {
		return nil
	}
	return &a
}

func (m *memArticles) GetByID(_ context.Context, id uint64) (*entity.Article, error) {
	if m.failAll {
		return nil, errStoreDown
	}
	return m.get(id), nil
}

func (m *memArticles) GetBySlug(_ context.Context, slug string) (*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	for _, a := range m.rows {
		if a.Slug == slug {
			cp := a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memArticles) Update(_ context.Context, a *entity.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	stored, ok := m.rows[a.ID]
	if !ok {
		return errors.New("missing row")
	}
	cp := *a
	cp.Views = stored.Views
	m.rows[a.ID] = cp
	return nil
}

func (m *memArticles) Delete(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	delete(m.rows, id)
	return nil
}

func (m *memArticles) filter(limit int, keep func(a *entity.Article) bool) ([]*entity.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	var out []*entity.Article
	for _, a := range m.rows {
		cp := a
		if keep(&cp) {
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memArticles) Search(_ context.Context, term string, limit int) ([]*entity.Article, error) {
	return m.filter(limit, func(a *entity.Article) bool {
		return a.IsPublic() && (strings.Contains(a.Title, term) || strings.Contains(a.Body, term))
	})
}

func (m *memArticles) ListByTag(_ context.Context, tag string, limit int) ([]*entity.Article, error) {
	return m.filter(limit, func(a *entity.Article) bool {
		if !a.IsPublic() {
			return false
		}
		for _, t := range a.Tags {
			if t == tag {
				return true
			}
		}
		return false
	})
}

func (m *memArticles) ListPublished(_ context.Context, limit int) ([]*entity.Article, error) {
	return m.filter(limit, (*entity.Article).IsPublic)
}

func (m *memArticles) ListAllForAdmin(context.Context) ([]*entity.Article, error) {
	return m.filter(0, func(*entity.Article) bool { return true })
}

func (m *memArticles) SlugExists(_ context.Context, slug string, excludeID uint64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return false, errStoreDown
	}
	for id, a := range m.rows {
		if a.Slug == slug && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memArticles) IncrementViews(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return errStoreDown
	}
	a, ok := m.rows[id]
	if !ok {
		return nil
	}
	a.Views++
	m.rows[id] = a
	return nil
}

// memViews is an in-memory ViewEventRepository.
type memViews struct {
	mu         sync.Mutex
	events     []entity.ViewEvent
	failCount  bool
	failDelete bool
	failStats  bool
}

func (m *memViews) Create(_ context.Context, ev *entity.ViewEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ev.ID = uint64(len(m.events) + 1)
	m.events = append(m.events, *ev)
	return nil
}

func (m *memViews) ExistsSince(_ context.Context, articleID uint64, fp string, since time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ev := range m.events {
		if ev.ArticleID == articleID && ev.Fingerprint == fp && ev.CreatedAt.After(since) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memViews) DeleteByArticle(_ context.Context, articleID uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errStoreDown
	}
	kept := m.events[:0]
	for _, ev := range m.events {
		if ev.ArticleID != articleID {
			kept = append(kept, ev)
		}
	}
	m.events = kept
	return nil
}

func (m *memViews) CountSince(_ context.Context, ids []uint64, since time.Time) (map[uint64]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCount {
		return nil, errStoreDown
	}
	want := map[uint64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[uint64]int64{}
	for _, ev := range m.events {
		if want[ev.ArticleID] && !ev.CreatedAt.Before(since) {
			out[ev.ArticleID]++
		}
	}
	return out, nil
}

func (m *memViews) Stats(_ context.Context, articleID uint64, since time.Time) (*drepo.ViewStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failStats {
		return nil, errStoreDown
	}
	ips := map[string]bool{}
	users := map[uint64]bool{}
	perDay := map[time.Time]int64{}
	for _, ev := range m.events {
		if ev.ArticleID != articleID {
			continue
		}
		ips[ev.Fingerprint] = true
		if ev.ViewerID != nil {
			users[*ev.ViewerID] = true
		}
		if !ev.CreatedAt.Before(since) {
			y, mo, d := ev.CreatedAt.Date()
			perDay[time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)]++
		}
	}
	stats := &drepo.ViewStats{UniqueFingerprints: int64(len(ips)), AuthenticatedUsers: int64(len(users))}
	for day, n := range perDay {
		stats.Daily = append(stats.Daily, entity.DailyViews{Day: day, Views: n})
	}
	return stats, nil
}

func (m *memViews) count(articleID uint64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ev := range m.events {
		if ev.ArticleID == articleID {
			n++
		}
	}
	return n
}

// memNotifications is an in-memory NotificationRepository. failFor makes
// Create fail for the given recipients.
type memNotifications struct {
	mu      sync.Mutex
	nextID  uint64
	rows    map[uint64]*entity.Notification
	failFor map[uint64]bool
	failAll bool
}

func newMemNotifications() *memNotifications {
	return &memNotifications{rows: map[uint64]*entity.Notification{}, failFor: map[uint64]bool{}}
}

func (m *memNotifications) Create(_ context.Context, n *entity.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll || m.failFor[n.UserID] {
		return errStoreDown
	}
	m.nextID++
	n.ID = m.nextID
	cp := *n
	m.rows[n.ID] = &cp
	return nil
}

func (m *memNotifications) GetByID(_ context.Context, id uint64) (*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID uint64, unreadOnly bool, offset, limit int) ([]*entity.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return nil, errStoreDown
	}
	var out []*entity.Notification
	for _, n := range m.rows {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			cp := *n
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memNotifications) CountUnread(_ context.Context, userID uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAll {
		return 0, errStoreDown
	}
	var c int64
	for _, n := range m.rows {
		if n.UserID == userID && !n.IsRead {
			c++
		}
	}
	return c, nil
}

func (m *memNotifications) MarkRead(_ context.Context, id, userID uint64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n, ok := m.rows[id]; ok && n.UserID == userID {
		n.MarkRead(at)
	}
	return nil
}

func (m *memNotifications) MarkAllRead(_ context.Context, userID uint64, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c int64
	for _, n := range m.rows {
		if n.UserID == userID && n.MarkRead(at) {
			c++
		}
	}
	return c, nil
}

func (m *memNotifications) DeleteByRelated(_ context.Context, relatedID uint64, relatedType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, n := range m.rows {
		if n.RelatedID != nil && *n.RelatedID == relatedID && n.RelatedType == relatedType {
			delete(m.rows, id)
		}
	}
	return nil
}

func (m *memNotifications) forUser(userID uint64) []*entity.Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*entity.Notification
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (m *memNotifications) total() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

// memActors is an in-memory ActorRepository.
type memActors struct {
	list []*entity.Actor
	err  error
}

func (m *memActors) GetByID(_ context.Context, id uint64) (*entity.Actor, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, a := range m.list {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (m *memActors) ListByRoles(_ context.Context, roles ...entity.Role) ([]*entity.Actor, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*entity.Actor
	for _, a := range m.list {
		for _, r := range roles {
			if a.Role == r {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

// memDedup is an in-memory ViewDedupCache.
type memDedup struct {
	mu   sync.Mutex
	keys map[string]time.Time
	now  func() time.Time
	err  error
}

func (m *memDedup) key(id uint64, fp string) string {
	return fmt.Sprintf("%d:%s", id, fp)
}

func (m *memDedup) Claim(_ context.Context, id uint64, fp string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if m.keys == nil {
		m.keys = map[string]time.Time{}
	}
	k := m.key(id, fp)
	if exp, ok := m.keys[k]; ok && m.now().Before(exp) {
		return false, nil
	}
	m.keys[k] = m.now().Add(ttl)
	return true, nil
}

func (m *memDedup) Release(_ context.Context, id uint64, fp string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, m.key(id, fp))
	return nil
}

// memBlobs is an in-memory BlobCache.
type memBlobs struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *memBlobs) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memBlobs) Set(_ context.Context, key string, payload []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = payload
	m.sets++
	return nil
}

func (m *memBlobs) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
