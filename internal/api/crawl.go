package api

type CrawlRequest struct {
	// Required
	Url string

	// Optional
	Instructions string
}

type CrawlPage struct {
	Url string
	Raw string
}

type CrawlResponse struct {
	BaseUrl string
	Results []*CrawlPage
}

type MapRequest struct {
	// Required
	Url string

	// Optional
	Instructions string
}

// MapResponse holds discovered urls only. Mapping a site never
// fetches page content, which is what makes it cheaper than a crawl.
type MapResponse struct {
	BaseUrl string
	Urls    []string
}
