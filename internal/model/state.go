package model

// State is a Malaysian state row with its optional admin
// assignment. The public `/states` listing fills only the title,
// code and flag; `/states/admin` adds the assignment columns.
type State struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	Flag       string `json:"flag,omitempty"`
	AdminID    string `json:"adminId,omitempty"`
	AdminName  string `json:"adminName,omitempty"`
	AdminEmail string `json:"adminEmail,omitempty"`
	IsActive   bool   `json:"isActive"`
}

// StateList is the upstream response body for both state listings.
type StateList struct {
	States []State `json:"states"`
}
