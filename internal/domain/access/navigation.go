package access

// NavItem is a dashboard section entry.
type NavItem struct {
	Resource Resource `json:"resource"`
	Label    string   `json:"label"`
	Path     string   `json:"path"`
}

var sections = []NavItem{
	{Resource: ResourceDashboard, Label: "Dashboard", Path: "/"},
	{Resource: ResourceWebsites, Label: "Websites", Path: "/websites"},
	{Resource: ResourceCredentials, Label: "Credentials", Path: "/credentials"},
	{Resource: ResourceDomains, Label: "Domains", Path: "/domains"},
	{Resource: ResourceServers, Label: "Servers", Path: "/servers"},
	{Resource: ResourceUsers, Label: "Users", Path: "/users"},
}

// Navigation returns the sections visible to role, in display order.
func Navigation(role Role) []NavItem {
	perms := PermissionsFor(role)
	out := make([]NavItem, 0, len(sections))
	for _, s := range sections {
		if perms.Allows(s.Resource, ActionRead) {
			out = append(out, s)
		}
	}
	return out
}
