package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/alan-mat/scour/internal/api"
	"github.com/alan-mat/scour/internal/http"
)

const (
	Endpoint           = "https://api.tavily.com"
	SearchDefaultLimit = 5
	ExtractMaxUrls     = 20

	apiKeyEnvVar = "TAVILY_API_KEY"
)

var (
	// ErrMissingApiKey is returned by New before any network use when
	// no credential is available.
	ErrMissingApiKey = errors.New("missing api key, set " + apiKeyEnvVar)

	ErrTooManyUrls = fmt.Errorf("extract accepts at most %d urls per request", ExtractMaxUrls)
)

type SearchResponse struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
	Images []struct {
		Url         string `json:"url"`
		Description string `json:"description"`
	} `json:"images"`
	Results      []*SearchResult `json:"results"`
	ResponseTime float32         `json:"response_time"`
}

type SearchResult struct {
	Title   string  `json:"title"`
	Url     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
	Raw     string  `json:"raw_content"`
}

type extractResponse struct {
	Results []struct {
		Url string `json:"url"`
		Raw string `json:"raw_content"`
	} `json:"results"`
	FailedResults []struct {
		Url   string `json:"url"`
		Error string `json:"error"`
	} `json:"failed_results"`
	ResponseTime float32 `json:"response_time"`
}

type crawlResponse struct {
	BaseUrl string `json:"base_url"`
	Results []struct {
		Url string `json:"url"`
		Raw string `json:"raw_content"`
	} `json:"results"`
	ResponseTime float32 `json:"response_time"`
}

type mapResponse struct {
	BaseUrl      string   `json:"base_url"`
	Results      []string `json:"results"`
	ResponseTime float32  `json:"response_time"`
}

type settings struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	maxRetries int
}

type Option func(*settings)

// WithEndpoint overrides the remote API base url.
func WithEndpoint(endpoint string) Option {
	return func(s *settings) {
		s.endpoint = endpoint
	}
}

// WithApiKey overrides the credential read from the environment.
func WithApiKey(key string) Option {
	return func(s *settings) {
		s.apiKey = key
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(s *settings) {
		s.timeout = timeout
	}
}

func WithMaxRetries(maxRetries int) Option {
	return func(s *settings) {
		s.maxRetries = maxRetries
	}
}

type TavilyProvider struct {
	client http.Client
}

func New(opts ...Option) (*TavilyProvider, error) {
	s := settings{
		endpoint:   Endpoint,
		apiKey:     os.Getenv(apiKeyEnvVar),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.apiKey == "" {
		return nil, ErrMissingApiKey
	}

	copts := []http.ClientOption{
		http.WithApiKey(s.apiKey),
		http.WithMaxRetries(s.maxRetries),
	}
	if s.timeout > 0 {
		copts = append(copts, http.WithTimeout(s.timeout))
	}

	p := &TavilyProvider{
		client: http.NewClient(s.endpoint, copts...),
	}
	return p, nil
}

func (p TavilyProvider) Search(ctx context.Context, req api.WebSearchRequest) (*api.WebSearchResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if req.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}

	var limit int
	if req.Limit != 0 {
		limit = req.Limit
	} else {
		limit = SearchDefaultLimit
	}

	topic := req.Topic
	if topic == "" {
		topic = "general"
	}

	requestData := map[string]any{
		"query":                      req.Query,
		"topic":                      topic,
		"search_depth":               "basic",
		"max_results":                limit,
		"include_answer":             false,
		"include_raw_content":        req.IncludeRawContent,
		"include_images":             false,
		"include_image_descriptions": false,
	}
	if req.TimeRange != "" {
		requestData["time_range"] = req.TimeRange
	}
	if len(req.IncludeDomains) > 0 {
		requestData["include_domains"] = req.IncludeDomains
	}

	resp, err := p.client.Request(ctx, http.MethodPost, "/search", requestData)
	if err != nil {
		return nil, fmt.Errorf("web search request failed: %w", err)
	}

	var searchResponse SearchResponse
	if err := decodeResponse(resp, &searchResponse); err != nil {
		return nil, fmt.Errorf("failed to deserialize web search response: %w", err)
	}

	docs := make([]*api.ScoredDocument, 0, len(searchResponse.Results))
	for _, result := range searchResponse.Results {
		docs = append(docs, &api.ScoredDocument{
			Content: result.Content,
			Score:   result.Score,
			Title:   result.Title,
			Url:     result.Url,
			Raw:     result.Raw,
		})
	}

	// the remote side honours max_results, this keeps the contract
	// local too
	if len(docs) > limit {
		docs = docs[:limit]
	}

	return &api.WebSearchResponse{
		Query:   searchResponse.Query,
		Results: docs,
	}, nil
}

func (p TavilyProvider) Extract(ctx context.Context, req api.ExtractRequest) (*api.ExtractResponse, error) {
	if len(req.Urls) == 0 {
		return nil, fmt.Errorf("urls must not be empty")
	}
	if len(req.Urls) > ExtractMaxUrls {
		return nil, ErrTooManyUrls
	}

	depth := req.Depth
	if depth == "" {
		depth = "basic"
	}

	requestData := map[string]any{
		"urls":           req.Urls,
		"extract_depth":  depth,
		"include_images": false,
	}

	resp, err := p.client.Request(ctx, http.MethodPost, "/extract", requestData)
	if err != nil {
		return nil, fmt.Errorf("extract request failed: %w", err)
	}

	var extractResponse extractResponse
	if err := decodeResponse(resp, &extractResponse); err != nil {
		return nil, fmt.Errorf("failed to deserialize extract response: %w", err)
	}

	pages := make([]*api.ExtractedPage, 0, len(extractResponse.Results))
	for _, result := range extractResponse.Results {
		pages = append(pages, &api.ExtractedPage{
			Url: result.Url,
			Raw: result.Raw,
		})
	}

	failed := make([]*api.FailedPage, 0, len(extractResponse.FailedResults))
	for _, result := range extractResponse.FailedResults {
		failed = append(failed, &api.FailedPage{
			Url:    result.Url,
			Reason: result.Error,
		})
	}

	return &api.ExtractResponse{
		Results: pages,
		Failed:  failed,
	}, nil
}

func (p TavilyProvider) Crawl(ctx context.Context, req api.CrawlRequest) (*api.CrawlResponse, error) {
	if req.Url == "" {
		return nil, fmt.Errorf("url must not be empty")
	}

	requestData := map[string]any{
		"url": req.Url,
	}
	if req.Instructions != "" {
		requestData["instructions"] = req.Instructions
	}

	resp, err := p.client.Request(ctx, http.MethodPost, "/crawl", requestData)
	if err != nil {
		return nil, fmt.Errorf("crawl request failed: %w", err)
	}

	var crawlResponse crawlResponse
	if err := decodeResponse(resp, &crawlResponse); err != nil {
		return nil, fmt.Errorf("failed to deserialize crawl response: %w", err)
	}

	pages := make([]*api.CrawlPage, 0, len(crawlResponse.Results))
	for _, result := range crawlResponse.Results {
		pages = append(pages, &api.CrawlPage{
			Url: result.Url,
			Raw: result.Raw,
		})
	}

	return &api.CrawlResponse{
		BaseUrl: crawlResponse.BaseUrl,
		Results: pages,
	}, nil
}

func (p TavilyProvider) Map(ctx context.Context, req api.MapRequest) (*api.MapResponse, error) {
	if req.Url == "" {
		return nil, fmt.Errorf("url must not be empty")
	}

	requestData := map[string]any{
		"url": req.Url,
	}
	if req.Instructions != "" {
		requestData["instructions"] = req.Instructions
	}

	resp, err := p.client.Request(ctx, http.MethodPost, "/map", requestData)
	if err != nil {
		return nil, fmt.Errorf("map request failed: %w", err)
	}

	var mapResponse mapResponse
	if err := decodeResponse(resp, &mapResponse); err != nil {
		return nil, fmt.Errorf("failed to deserialize map response: %w", err)
	}

	return &api.MapResponse{
		BaseUrl: mapResponse.BaseUrl,
		Urls:    mapResponse.Results,
	}, nil
}

func decodeResponse(resp map[string]any, target any) error {
	jsonData, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(jsonData, target)
}
