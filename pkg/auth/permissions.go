package auth

import "github.com/projecthub-io/projecthub/pkg/models"

// Permission is a coarse capability a role may hold on the project resource.
type Permission string

const (
	PermissionRead   Permission = "read"
	PermissionCreate Permission = "create"
	PermissionUpdate Permission = "update"
	PermissionDelete Permission = "delete"
)

// PermissionTable maps roles to the permissions they are granted. It is
// built once at startup and injected where needed; it is never mutated
// afterwards. The table only covers the coarse role capability — ownership
// checks on individual projects are layered on top by the project service.
type PermissionTable struct {
	grants map[string]map[Permission]bool
}

// NewPermissionTable returns the static role→permission mapping:
// admin holds all four permissions, user holds read only.
func NewPermissionTable() *PermissionTable {
	return &PermissionTable{
		grants: map[string]map[Permission]bool{
			models.RoleAdmin: {
				PermissionRead:   true,
				PermissionCreate: true,
				PermissionUpdate: true,
				PermissionDelete: true,
			},
			models.RoleUser: {
				PermissionRead: true,
			},
		},
	}
}

// Has reports whether role is granted perm. Unknown roles fail closed.
func (t *PermissionTable) Has(role string, perm Permission) bool {
	grants, ok := t.grants[role]
	if !ok {
		return false
	}
	return grants[perm]
}
