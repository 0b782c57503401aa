package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/alan-mat/scour/internal/api"
	"github.com/alan-mat/scour/internal/provider/tavily"
	"github.com/alan-mat/scour/internal/registry"
)

var ErrInvalidWebRetrieverType = errors.New("no web retriever found for given type")

const (
	WebRetrieverTypeTavily = iota
)

type WebRetrieverType int

// WebRetriever wraps a hosted web-retrieval service. Every call is a
// single blocking request against one remote endpoint.
type WebRetriever interface {
	Search(ctx context.Context, req api.WebSearchRequest) (*api.WebSearchResponse, error)
	Extract(ctx context.Context, req api.ExtractRequest) (*api.ExtractResponse, error)
	Crawl(ctx context.Context, req api.CrawlRequest) (*api.CrawlResponse, error)
	Map(ctx context.Context, req api.MapRequest) (*api.MapResponse, error)
}

func NewWebRetriever(t WebRetrieverType, opts ...tavily.Option) (WebRetriever, error) {
	switch t {
	case WebRetrieverTypeTavily:
		return tavily.New(opts...)
	default:
		return nil, ErrInvalidWebRetrieverType
	}
}

var retrievers = registry.New[string, func() (WebRetriever, error)]()

func init() {
	retrievers.Register("tavily", func() (WebRetriever, error) {
		return tavily.New()
	})
}

// NewWebRetrieverByName constructs the retriever registered under the
// given name.
func NewWebRetrieverByName(name string) (WebRetriever, error) {
	ctor, ok := retrievers.Get(name)
	if !ok {
		return nil, fmt.Errorf("web retriever with name '%s' does not exist", name)
	}
	return ctor()
}

func ListWebRetrievers() []string {
	return retrievers.List()
}
