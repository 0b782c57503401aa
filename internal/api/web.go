package api

type WebSearchRequest struct {
	// Required
	Query string

	// Optional
	Limit             int
	Topic             string
	TimeRange         string
	IncludeDomains    []string
	IncludeRawContent bool
}

type WebSearchResponse struct {
	Query   string
	Results []*ScoredDocument
}

type ScoredDocument struct {
	// Required
	Content string
	Score   float64

	// Optional
	Title string
	Url   string
	Raw   string
}
