package http

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"blog-service/ddd/application/app"
	"blog-service/ddd/domain/entity"
	"blog-service/pkg/errno"
)

// headerUserID is set by the API gateway after authentication.
const headerUserID = "X-User-ID"

func headerUser(ctx *gin.Context) (uint64, bool) {
	raw := strings.TrimSpace(ctx.GetHeader(headerUserID))
	if raw == "" {
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// requireActor resolves the authenticated actor or fails with ErrUnauthorized.
func requireActor(ctx *gin.Context, ids app.IdentityApp) (*entity.Actor, error) {
	id, ok := headerUser(ctx)
	if !ok {
		return nil, errno.ErrUnauthorized
	}
	return ids.ResolveActor(ctx.Request.Context(), id)
}

// optionalViewerID returns the forwarded user id, if any, without a lookup.
func optionalViewerID(ctx *gin.Context) *uint64 {
	id, ok := headerUser(ctx)
	if !ok {
		return nil
	}
	return &id
}

func pathID(ctx *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errno.NewSimpleBizError(errno.ErrParameterInvalid, err, name)
	}
	return id, nil
}
