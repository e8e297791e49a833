package entity

import (
	"sort"
	"strings"

	"blog-service/pkg/jsonx"
)

// Role 用户角色。
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleContentManager Role = "Content Manager"
	RoleAssistantAdmin Role = "Assistant Admin"
)

// PermManageContent grants an Assistant Admin both manage and approve capability.
const PermManageContent = "manage_content"

// PermissionSet is the parsed, typed form of a user's stored permissions.
type PermissionSet map[string]struct{}

// ParsePermissions parses the stored permissions text exactly once. It accepts
// a JSON array or a JSON string wrapping an array; anything else yields an
// empty set.
func ParsePermissions(raw string) PermissionSet {
	list, ok := jsonx.DecodeStringList([]byte(raw))
	if !ok {
		return PermissionSet{}
	}
	return NewPermissionSet(list...)
}

// NewPermissionSet builds a set from the given permission names.
func NewPermissionSet(perms ...string) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}

// Has reports whether perm is in the set. A nil set has no permissions.
func (s PermissionSet) Has(perm string) bool {
	_, ok := s[perm]
	return ok
}

// List returns the permissions in sorted order.
func (s PermissionSet) List() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Actor 当前操作者，由身份服务提供，显式传入每个用例。
type Actor struct {
	ID          uint64
	Name        string
	Email       string
	Role        Role
	Permissions PermissionSet
}

// DisplayName 用于通知文案。
func (a *Actor) DisplayName() string {
	if a == nil {
		return "Someone"
	}
	if n := strings.TrimSpace(a.Name); n != "" {
		return n
	}
	if e := strings.TrimSpace(a.Email); e != "" {
		return e
	}
	return "Someone"
}
