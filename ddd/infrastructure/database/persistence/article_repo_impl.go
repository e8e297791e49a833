package persistence

import (
	"context"

	"gorm.io/gorm"

	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/infrastructure/database/dao"
	"blog-service/ddd/infrastructure/database/po"
	"blog-service/pkg/jsonx"
)

type articleRepositoryImpl struct {
	dao *dao.ArticleDao
}

func NewArticleRepository() drepo.ArticleRepository {
	return &articleRepositoryImpl{dao: dao.NewArticleDao()}
}

func NewArticleRepositoryWithDB(db *gorm.DB) drepo.ArticleRepository {
	return &articleRepositoryImpl{dao: dao.NewArticleDaoWithDB(db)}
}

func (r *articleRepositoryImpl) Create(ctx context.Context, a *entity.Article) error {
	p := articleToPO(a)
	if err := r.dao.Create(ctx, p); err != nil {
		return err
	}
	a.ID = p.ID
	a.CreatedAt = p.CreatedAt
	a.UpdatedAt = p.UpdatedAt
	return nil
}

func (r *articleRepositoryImpl) GetByID(ctx context.Context, id uint64) (*entity.Article, error) {
	return single(r.dao.GetByID(ctx, id))
}

func (r *articleRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	return single(r.dao.GetBySlug(ctx, slug))
}

func (r *articleRepositoryImpl) Update(ctx context.Context, a *entity.Article) error {
	return r.dao.Update(ctx, articleToPO(a))
}

func (r *articleRepositoryImpl) Delete(ctx context.Context, id uint64) error {
	return r.dao.Delete(ctx, id)
}

func (r *articleRepositoryImpl) Search(ctx context.Context, term string, limit int) ([]*entity.Article, error) {
	return many(r.dao.Search(ctx, term, limit))
}

func (r *articleRepositoryImpl) ListByTag(ctx context.Context, tag string, limit int) ([]*entity.Article, error) {
	return many(r.dao.ListByTag(ctx, tag, limit))
}

func (r *articleRepositoryImpl) ListPublished(ctx context.Context, limit int) ([]*entity.Article, error) {
	return many(r.dao.ListPublished(ctx, limit))
}

func (r *articleRepositoryImpl) ListAllForAdmin(ctx context.Context) ([]*entity.Article, error) {
	return many(r.dao.ListAll(ctx))
}

func (r *articleRepositoryImpl) SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error) {
	n, err := r.dao.CountSlug(ctx, slug, excludeID)
	return n > 0, err
}

func (r *articleRepositoryImpl) IncrementViews(ctx context.Context, id uint64) error {
	return r.dao.IncrementViews(ctx, id)
}

func single(p *po.Article, err error) (*entity.Article, error) {
	if err != nil || p == nil {
		return nil, err
	}
	return articleFromPO(p), nil
}

func many(pos []po.Article, err error) ([]*entity.Article, error) {
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Article, 0, len(pos))
	for i := range pos {
		out = append(out, articleFromPO(&pos[i]))
	}
	return out, nil
}

func articleToPO(a *entity.Article) *po.Article {
	p := &po.Article{
		ID:              a.ID,
		Slug:            a.Slug,
		Title:           a.Title,
		Body:            a.Body,
		Excerpt:         a.Excerpt,
		FeaturedImage:   a.FeaturedImage,
		MetaTitle:       a.MetaTitle,
		MetaDescription: a.MetaDescription,
		Tags:            jsonx.EncodeStringList(nonNil(a.Tags)),
		IsFeatured:      a.IsFeatured,
		IsNews:          a.IsNews,
		NewsType:        string(a.NewsType),
		AuthorID:        a.AuthorID,
		Status:          string(a.Status()),
		Approved:        a.Approved(),
		PublishedAt:     a.PublishedAt(),
		Views:           a.Views,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
	if a.TargetCountries != nil {
		enc := jsonx.EncodeStringList(a.TargetCountries)
		p.TargetCountries = &enc
	}
	return p
}

func articleFromPO(p *po.Article) *entity.Article {
	a := &entity.Article{
		ID:              p.ID,
		Slug:            p.Slug,
		Title:           p.Title,
		Body:            p.Body,
		Excerpt:         p.Excerpt,
		FeaturedImage:   p.FeaturedImage,
		MetaTitle:       p.MetaTitle,
		MetaDescription: p.MetaDescription,
		Tags:            jsonx.StringListOrEmpty(p.Tags),
		IsFeatured:      p.IsFeatured,
		IsNews:          p.IsNews,
		NewsType:        entity.NewsType(p.NewsType),
		AuthorID:        p.AuthorID,
		Views:           p.Views,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.TargetCountries != nil {
		a.TargetCountries = jsonx.StringListOrEmpty(*p.TargetCountries)
	}
	a.RestoreWorkflow(entity.ArticleStatus(p.Status), p.Approved, p.PublishedAt)
	return a
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
