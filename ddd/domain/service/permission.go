package service

import (
	"context"

	"blog-service/ddd/domain/entity"
	"blog-service/ddd/domain/repo"
)

// CanManage reports whether actor may create or edit content. Content
// Managers can manage but never approve.
func CanManage(actor *entity.Actor) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case entity.RoleAdmin, entity.RoleContentManager:
		return true
	case entity.RoleAssistantAdmin:
		return actor.Permissions.Has(entity.PermManageContent)
	}
	return false
}

// CanApprove reports whether actor may publish, approve or delete content.
func CanApprove(actor *entity.Actor) bool {
	if actor == nil {
		return false
	}
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleAssistantAdmin:
		return actor.Permissions.Has(entity.PermManageContent)
	}
	return false
}

// ApproverResolver 解析当前有审批权限的用户集合。
type ApproverResolver struct {
	actors repo.ActorRepository
}

func NewApproverResolver(actors repo.ActorRepository) *ApproverResolver {
	return &ApproverResolver{actors: actors}
}

// ListApprovers returns every admin plus every Assistant Admin holding
// manage_content, deduplicated by id in first-seen order.
func (r *ApproverResolver) ListApprovers(ctx context.Context) ([]*entity.Actor, error) {
	candidates, err := r.actors.ListByRoles(ctx, entity.RoleAdmin, entity.RoleAssistantAdmin)
	if err != nil {
		return nil, err
	}
	seen := make(map[uint64]struct{}, len(candidates))
	out := make([]*entity.Actor, 0, len(candidates))
	for _, c := range candidates {
		if !CanApprove(c) {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
