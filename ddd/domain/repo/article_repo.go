package repo

import (
	"context"

	"blog-service/ddd/domain/entity"
)

// ArticleRepository 文章仓储接口。Get* 在记录不存在时返回 (nil, nil)。
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id uint64) (*entity.Article, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id uint64) error

	// Search, ListByTag and ListPublished only return published articles.
	Search(ctx context.Context, term string, limit int) ([]*entity.Article, error)
	ListByTag(ctx context.Context, tag string, limit int) ([]*entity.Article, error)
	ListPublished(ctx context.Context, limit int) ([]*entity.Article, error)
	ListAllForAdmin(ctx context.Context) ([]*entity.Article, error)

	SlugExists(ctx context.Context, slug string, excludeID uint64) (bool, error)
	IncrementViews(ctx context.Context, id uint64) error
}
