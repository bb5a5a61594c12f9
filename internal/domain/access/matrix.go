package access

// Resource is a permission-gated area of the dashboard.
type Resource string

const (
	ResourceDashboard   Resource = "dashboard"
	ResourceWebsites    Resource = "websites"
	ResourceCredentials Resource = "credentials"
	ResourceDomains     Resource = "domains"
	ResourceServers     Resource = "servers"
	ResourceUsers       Resource = "users"
)

// Action is one of the four CRUD operations.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// CRUDFlags holds the operations a role may perform on one resource.
type CRUDFlags struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// Allows reports whether act is permitted.
func (f CRUDFlags) Allows(act Action) bool {
	switch act {
	case ActionCreate:
		return f.Create
	case ActionRead:
		return f.Read
	case ActionUpdate:
		return f.Update
	case ActionDelete:
		return f.Delete
	}
	return false
}

// ResourcePermissions is the full capability set of a role.
type ResourcePermissions struct {
	Dashboard   bool      `json:"dashboard"`
	Websites    CRUDFlags `json:"websites"`
	Credentials CRUDFlags `json:"credentials"`
	Domains     CRUDFlags `json:"domains"`
	Servers     CRUDFlags `json:"servers"`
	Users       CRUDFlags `json:"users"`
}

var (
	crud     = CRUDFlags{Create: true, Read: true, Update: true, Delete: true}
	cru      = CRUDFlags{Create: true, Read: true, Update: true}
	readOnly = CRUDFlags{Read: true}
	none     = CRUDFlags{}
)

var matrix = map[Role]ResourcePermissions{
	RoleSuperAdmin: {
		Dashboard:   true,
		Websites:    crud,
		Credentials: crud,
		Domains:     crud,
		Servers:     crud,
		Users:       crud,
	},
	RoleAdmin: {
		Dashboard:   true,
		Websites:    crud,
		Credentials: crud,
		Domains:     crud,
		Servers:     crud,
		Users:       readOnly,
	},
	RoleEditor: {
		Dashboard:   true,
		Websites:    cru,
		Credentials: cru,
		Domains:     readOnly,
		Servers:     readOnly,
		Users:       none,
	},
	RoleViewer: {
		Dashboard:   true,
		Websites:    readOnly,
		Credentials: readOnly,
		Domains:     readOnly,
		Servers:     readOnly,
		Users:       none,
	},
}

// PermissionsFor returns the capability set of role. Every valid role gets a
// fully populated value; anything else gets the zero value, which permits
// nothing.
func PermissionsFor(role Role) ResourcePermissions {
	return matrix[role]
}

// Flags returns the CRUD set for res. The dashboard has no CRUD set and
// reports ok=false.
func (p ResourcePermissions) Flags(res Resource) (CRUDFlags, bool) {
	switch res {
	case ResourceWebsites:
		return p.Websites, true
	case ResourceCredentials:
		return p.Credentials, true
	case ResourceDomains:
		return p.Domains, true
	case ResourceServers:
		return p.Servers, true
	case ResourceUsers:
		return p.Users, true
	}
	return CRUDFlags{}, false
}

// Allows answers whether act on res is permitted. The dashboard only
// supports ActionRead.
func (p ResourcePermissions) Allows(res Resource, act Action) bool {
	if res == ResourceDashboard {
		return act == ActionRead && p.Dashboard
	}
	f, ok := p.Flags(res)
	if !ok {
		return false
	}
	return f.Allows(act)
}

// Can is shorthand for PermissionsFor(role).Allows(res, act).
func Can(role Role, res Resource, act Action) bool {
	return PermissionsFor(role).Allows(res, act)
}
