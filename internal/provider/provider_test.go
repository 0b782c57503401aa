package provider_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/alan-mat/scour/internal/provider"
)

func TestNewWebRetriever(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "test-key")

	ret, err := provider.NewWebRetriever(provider.WebRetrieverTypeTavily)
	if err != nil {
		t.Fatalf("failed to create retriever: %v", err)
	}
	if ret == nil {
		t.Error("got nil retriever")
	}
}

func TestNewWebRetrieverInvalidType(t *testing.T) {
	_, err := provider.NewWebRetriever(provider.WebRetrieverType(99))
	if !errors.Is(err, provider.ErrInvalidWebRetrieverType) {
		t.Errorf("got error '%v', expected invalid retriever type", err)
	}
}

func TestNewWebRetrieverByName(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "test-key")

	ret, err := provider.NewWebRetrieverByName("tavily")
	if err != nil {
		t.Fatalf("failed to create retriever: %v", err)
	}
	if ret == nil {
		t.Error("got nil retriever")
	}

	_, err = provider.NewWebRetrieverByName("unknown")
	if err == nil {
		t.Error("expected an error for an unregistered name")
	}
}

func TestListWebRetrievers(t *testing.T) {
	names := provider.ListWebRetrievers()
	if !slices.Contains(names, "tavily") {
		t.Errorf("got %v, expected 'tavily' to be registered", names)
	}
}
