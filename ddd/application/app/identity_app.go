package app

import (
	"context"
	"sync"

	"blog-service/ddd/domain/entity"
	drepo "blog-service/ddd/domain/repo"
	"blog-service/ddd/infrastructure/database/persistence"
	"blog-service/pkg/assert"
	"blog-service/pkg/errno"
)

// IdentityApp 将网关透传的用户 ID 解析为操作者。
type IdentityApp interface {
	ResolveActor(ctx context.Context, userID uint64) (*entity.Actor, error)
}

type identityAppImpl struct {
	actors drepo.ActorRepository
}

var (
	identityAppOnce sync.Once
	identityApp     IdentityApp
)

func DefaultIdentityApp() IdentityApp {
	identityAppOnce.Do(func() {
		assert.NotCircular()
		identityApp = NewIdentityApp(persistence.NewActorRepository())
	})
	return identityApp
}

func NewIdentityApp(actors drepo.ActorRepository) IdentityApp {
	return &identityAppImpl{actors: actors}
}

// ResolveActor returns ErrUnauthorized when userID is zero or unknown.
func (a *identityAppImpl) ResolveActor(ctx context.Context, userID uint64) (*entity.Actor, error) {
	if userID == 0 {
		return nil, errno.ErrUnauthorized
	}
	actor, err := a.actors.GetByID(ctx, userID)
	if err != nil {
		return nil, errno.Dependency(err, "load actor")
	}
	if actor == nil {
		return nil, errno.ErrUnauthorized
	}
	return actor, nil
}
