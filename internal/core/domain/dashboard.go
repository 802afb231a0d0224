package domain

// DashboardCard is a single action card on a dashboard landing page.
type DashboardCard struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// Dashboard describes the landing view rendered for a role.
type Dashboard struct {
	Name  string          `json:"name"`
	Title string          `json:"title"`
	Nav   []string        `json:"nav"`
	Cards []DashboardCard `json:"cards"`
}

// dashboards is the exhaustive Role → view mapping. Both Role values have
// an entry; DashboardFor never consults anything but this table.
var dashboards = map[Role]Dashboard{
	RoleAdmin: {
		Name:  "admin",
		Title: "Admin Dashboard",
		Nav:   []string{"Home", "User Management", "Reports", "Settings"},
		Cards: []DashboardCard{
			{Title: "User Management", Description: "Manage system users and permissions", Action: "users"},
			{Title: "Add Employee", Description: "Register new employees to the system", Action: "register"},
			{Title: "System Settings", Description: "Configure system settings and preferences", Action: "settings"},
			{Title: "Reports", Description: "View system reports and analytics", Action: "reports"},
			{Title: "Security", Description: "Monitor security logs and access", Action: "security"},
		},
	},
	RoleUser: {
		Name:  "user",
		Title: "User Dashboard",
		Nav:   []string{"Home", "My Profile", "My Tasks", "Documents", "Notifications"},
		Cards: []DashboardCard{
			{Title: "My Profile", Description: "View and update your profile", Action: "profile"},
			{Title: "My Tasks", Description: "Track your assigned tasks", Action: "tasks"},
			{Title: "Documents", Description: "Browse shared documents", Action: "documents"},
		},
	},
}

// DashboardFor maps a role to its landing dashboard.
func DashboardFor(r Role) Dashboard {
	d, ok := dashboards[r]
	if !ok {
		return dashboards[RoleUser]
	}
	return d
}
