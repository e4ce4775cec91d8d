package model

// DashboardStats are the headline counters on the admin dashboard.
type DashboardStats struct {
	TotalMembers             int `json:"totalMembers"`
	TotalProducts            int `json:"totalProducts"`
	TotalPendingApplications int `json:"totalPendingApplications"`
}

// StateOverview is one per-state row of the admin dashboard table.
type StateOverview struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Code                string `json:"code"`
	Members             int    `json:"members"`
	PendingApplications int    `json:"pendingApplications"`
	Products            int    `json:"products"`
}

// DashboardData is the full admin dashboard aggregate. Partial
// fetches (/stats, /state-overview) replace only their slice.
type DashboardData struct {
	Stats     DashboardStats  `json:"stats"`
	StateData []StateOverview `json:"stateData"`
}
