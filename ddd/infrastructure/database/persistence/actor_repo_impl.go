package persistence

import (
	"context"

	"gorm.io/gorm"

	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/infrastructure/database/dao"
	"blog-service/ddd/infrastructure/database/po"
)

type actorRepositoryImpl struct {
	dao *dao.UserDao
}

func NewActorRepository() drepo.ActorRepository {
	return &actorRepositoryImpl{dao: dao.NewUserDao()}
}

func NewActorRepositoryWithDB(db *gorm.DB) drepo.ActorRepository {
	return &actorRepositoryImpl{dao: dao.NewUserDaoWithDB(db)}
}

func (r *actorRepositoryImpl) GetByID(ctx context.Context, id uint64) (*entity.Actor, error) {
	p, err := r.dao.GetByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}
	return actorFromPO(p), nil
}

func (r *actorRepositoryImpl) ListByRoles(ctx context.Context, roles ...entity.Role) ([]*entity.Actor, error) {
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, string(role))
	}
	pos, err := r.dao.ListByRoles(ctx, names)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Actor, 0, len(pos))
	for i := range pos {
		out = append(out, actorFromPO(&pos[i]))
	}
	return out, nil
}

// actorFromPO parses the stored permissions once; downstream code only sees the set.
func actorFromPO(p *po.User) *entity.Actor {
	return &entity.Actor{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Role:        entity.Role(p.Role),
		Permissions: entity.ParsePermissions(p.Permissions),
	}
}
