package model

// Pagination defaults
const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// Pagination selects a window of a listing
type Pagination struct {
	Limit  int
	Offset int
}

// Normalize clamps the window to the allowed range
func (p Pagination) Normalize() Pagination {
	if p.Limit <= 0 || p.Limit > MaxPageLimit {
		p.Limit = DefaultPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Page is one window of a listing plus the total number of matches
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// DateRange bounds a listing by calendar date, both ends inclusive and optional
type DateRange struct {
	From *string
	To   *string
}
