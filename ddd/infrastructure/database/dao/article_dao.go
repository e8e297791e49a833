package dao

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"blog-service/ddd/infrastructure/database/po"
	"blog-service/internal/resource"
	"blog-service/pkg/jsonx"
)

const (
	statusPublished = "published"
	// publishedScope restricts a query to the public surface.
	publishedScope = "status = ? AND approved = ?"
)

type ArticleDao struct {
	db *gorm.DB
}

func NewArticleDao() *ArticleDao {
	return &ArticleDao{db: resource.MainDB()}
}

func NewArticleDaoWithDB(db *gorm.DB) *ArticleDao {
	return &ArticleDao{db: db}
}

func (d *ArticleDao) Create(ctx context.Context, p *po.Article) error {
	return d.db.WithContext(ctx).Create(p).Error
}

func (d *ArticleDao) GetByID(ctx context.Context, id uint64) (*po.Article, error) {
	return d.take(ctx, "id = ?", id)
}

func (d *ArticleDao) GetBySlug(ctx context.Context, slug string) (*po.Article, error) {
	return d.take(ctx, "slug = ?", slug)
}

func (d *ArticleDao) take(ctx context.Context, cond string, arg interface{}) (*po.Article, error) {
	var p po.Article
	err := d.db.WithContext(ctx).Where(cond, arg).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update writes every column except the view counter, which only moves
// through IncrementViews.
func (d *ArticleDao) Update(ctx context.Context, p *po.Article) error {
	return d.db.WithContext(ctx).
		Model(&po.Article{ID: p.ID}).
		Select("*").
		Omit("id", "views", "created_at").
		Updates(p).Error
}

func (d *ArticleDao) Delete(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).Delete(&po.Article{}, id).Error
}

func (d *ArticleDao) Search(ctx context.Context, term string, limit int) ([]po.Article, error) {
	like := "%" + escapeLike(term) + "%"
	var pos []po.Article
	err := d.published(ctx).
		Where("(title LIKE ? OR excerpt LIKE ? OR body LIKE ?)", like, like, like).
		Order("published_at DESC").
		Limit(limit).
		Find(&pos).Error
	return pos, err
}

// ListByTag matches the encoded tag inside the stored JSON array.
func (d *ArticleDao) ListByTag(ctx context.Context, tag string, limit int) ([]po.Article, error) {
	var pos []po.Article
	err := d.published(ctx).
		Where("tags LIKE ?", tagPattern(tag)).
		Order("published_at DESC").
		Limit(limit).
		Find(&pos).Error
	return pos, err
}

func (d *ArticleDao) ListPublished(ctx context.Context, limit int) ([]po.Article, error) {
	var pos []po.Article
	q := d.published(ctx).Order("published_at DESC").Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	err := q.Find(&pos).Error
	return pos, err
}

func (d *ArticleDao) ListAll(ctx context.Context) ([]po.Article, error) {
	var pos []po.Article
	err := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&pos).Error
	return pos, err
}

func (d *ArticleDao) CountSlug(ctx context.Context, slug string, excludeID uint64) (int64, error) {
	var count int64
	q := d.db.WithContext(ctx).Model(&po.Article{}).Where("slug = ?", slug)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (d *ArticleDao) IncrementViews(ctx context.Context, id uint64) error {
	return d.db.WithContext(ctx).
		Model(&po.Article{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
}

func (d *ArticleDao) published(ctx context.Context) *gorm.DB {
	return d.db.WithContext(ctx).Where(publishedScope, statusPublished, true)
}

// tagPattern builds the LIKE pattern for one element of a tags column written
// by jsonx.EncodeStringList.
func tagPattern(tag string) string {
	return "%" + escapeLike(jsonx.EncodeString(strings.TrimSpace(tag))) + "%"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.TrimSpace(s))
}
