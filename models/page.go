package models

// PageMeta is the pagination block of list responses.
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// SinglePage builds the meta block for an unpaginated result set, used when
// serving bundled fallback data.
func SinglePage(total int) PageMeta {
	return PageMeta{CurrentPage: 1, LastPage: 1, PerPage: total, Total: total}
}
