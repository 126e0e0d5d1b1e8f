package movies

import "moviedeck/internal/domain"

type SearchRequest struct {
	Query string `json:"query"`
}

type SearchResponse struct {
	Items []domain.Movie `json:"items"`
}

// State is a point-in-time snapshot of the search slice.
type State struct {
	Movies       []domain.Movie
	Loading      bool
	Error        string
	SearchQuery  string
	TotalResults int
	CurrentPage  int
}
