package model

// SortOrder is the direction of a list sort.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Flip returns the opposite direction.
func (o SortOrder) Flip() SortOrder {
	if o == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ListQuery carries the paging, search and sort parameters of a list request.
// Zero values mean "not set" and are left out of the query string.
type ListQuery struct {
	Page   int       `json:"page,omitempty"`
	Limit  int       `json:"limit,omitempty"`
	Search string    `json:"search,omitempty"`
	Sort   string    `json:"sort,omitempty"`
	Order  SortOrder `json:"order,omitempty"`
}

// Page is the paginated list envelope {items, total}.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// DeleteResult is returned by paginated resources on delete.
type DeleteResult struct {
	Success bool `json:"success"`
}
