package model

// Pagination mirrors the upstream list envelope. Invariants the
// services rely on: a fetched page holds at most Limit items and
// TotalPages is ceil(Total/Limit).
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// DefaultPagination is the initial and post-reset list state.
func DefaultPagination() Pagination {
	return Pagination{Page: 1, Limit: 10}
}
