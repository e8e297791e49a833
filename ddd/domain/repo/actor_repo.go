package repo

import (
	"context"

	"blog-service/ddd/domain/entity"
)

// ActorRepository 身份数据的只读视图。
type ActorRepository interface {
	GetByID(ctx context.Context, id uint64) (*entity.Actor, error)
	ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.Actor, error)
}
