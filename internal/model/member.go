package model

// Member is a membership record as served by the upstream
// `/members` endpoints. The gateway mirrors it verbatim into the
// per-session list cache; the upstream remains the owner.
//
// Fields:
//  ID              - stable member identifier.
//  Name            - member's full name.
//  CompanyName     - primary company.
//  Email, Phone    - contact details.
//  Address fields  - optional postal details.
//  ProductsCount   - number of registered products.
//  BusinessesCount - number of registered businesses.
//  JoinDate        - date the membership started.
//  Status          - active, pending or suspended.
//  LastLogin       - last seen timestamp, optional.
//  Businesses      - embedded businesses on detail fetches.
//  Products        - embedded products on detail fetches.
type Member struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	CompanyName     string     `json:"companyName"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	Address         string     `json:"address,omitempty"`
	Postcode        string     `json:"postcode,omitempty"`
	City            string     `json:"city,omitempty"`
	State           string     `json:"state,omitempty"`
	ProductsCount   int        `json:"productsCount"`
	BusinessesCount int        `json:"businessesCount"`
	JoinDate        string     `json:"joinDate"`
	Status          string     `json:"status"`
	LastLogin       string     `json:"lastLogin,omitempty"`
	Businesses      []Business `json:"businesses,omitempty"`
	Products        []Product  `json:"products,omitempty"`
}

// Member status values as reported upstream.
const (
	MemberStatusActive    = "active"
	MemberStatusPending   = "pending"
	MemberStatusSuspended = "suspended"
)

// MemberList is the upstream response body for a member listing.
type MemberList struct {
	Members    []Member   `json:"members"`
	Pagination Pagination `json:"pagination"`
}

// MemberStats aggregates the counters shown on the members
// dashboard card plus the most recent sign-ups.
type MemberStats struct {
	Stats struct {
		Total     int `json:"total"`
		Active    int `json:"active"`
		Suspended int `json:"suspended"`
		Inactive  int `json:"inactive"`
	} `json:"stats"`
	RecentMembers []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		JoinDate string `json:"joinDate"`
	} `json:"recentMembers"`
}
