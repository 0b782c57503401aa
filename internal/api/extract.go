package api

type ExtractRequest struct {
	// Required
	Urls []string

	// Optional
	Depth string
}

type ExtractedPage struct {
	Url string
	Raw string
}

// FailedPage reports a url the remote service could not extract,
// with the reason it gave.
type FailedPage struct {
	Url    string
	Reason string
}

type ExtractResponse struct {
	Results []*ExtractedPage
	Failed  []*FailedPage
}
