package access

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRole is returned for names outside the application roles.
var ErrUnknownRole = errors.New("access: unknown role")

// Role is the application-level role carried by a Principal.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleViewer     Role = "viewer"
)

// DefaultRole is assigned when no role-assignment record exists for a
// principal or when the lookup fails.
const DefaultRole = RoleViewer

// Roles lists every application role from most to least senior.
func Roles() []Role {
	return []Role{RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer}
}

// ParseRole parses an application role name.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownRole, s)
	}
	return r, nil
}

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// Seniority orders roles; higher means more privileged. Unknown roles rank 0.
func (r Role) Seniority() int {
	switch r {
	case RoleSuperAdmin:
		return 4
	case RoleAdmin:
		return 3
	case RoleEditor:
		return 2
	case RoleViewer:
		return 1
	}
	return 0
}

// Backend returns the value stored in the role-assignment table for r.
func (r Role) Backend() BackendRole {
	switch r {
	case RoleSuperAdmin:
		return BackendSuperAdmin
	case RoleAdmin:
		return BackendAdmin
	case RoleEditor:
		return BackendEditor
	}
	return BackendViewer
}

func (r Role) String() string { return string(r) }

// BackendRole is the role vocabulary of the user_roles table.
type BackendRole string

const (
	BackendSuperAdmin BackendRole = "super_admin"
	BackendAdmin      BackendRole = "admin"
	BackendEditor     BackendRole = "editor"
	BackendUser       BackendRole = "user"
	BackendViewer     BackendRole = "viewer"
	// BackendUnknown stands for any value outside the enumeration.
	BackendUnknown BackendRole = ""
)

// ParseBackendRole never fails: values outside the enumeration become
// BackendUnknown.
func ParseBackendRole(s string) BackendRole {
	switch b := BackendRole(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSuperAdmin, BackendAdmin, BackendEditor, BackendUser, BackendViewer:
		return b
	}
	return BackendUnknown
}

// AppRole translates a backend role into the application vocabulary.
// BackendUnknown maps to DefaultRole and can never elevate.
func (b BackendRole) AppRole() Role {
	switch b {
	case BackendSuperAdmin:
		return RoleSuperAdmin
	case BackendAdmin:
		return RoleAdmin
	case BackendEditor:
		return RoleEditor
	case BackendUser, BackendViewer:
		return RoleViewer
	}
	return DefaultRole
}
