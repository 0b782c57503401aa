package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alexflint/go-arg"
	"github.com/joho/godotenv"

	"github.com/alan-mat/scour/internal/api"
	"github.com/alan-mat/scour/internal/provider"
	"github.com/alan-mat/scour/internal/provider/tavily"
)

const (
	ProgramName   = "SCOUR"
	Version       = "v0.1.0"
	RepositoryUrl = "github.com/alan-mat/scour"
)

type searchCmd struct {
	Query     string   `arg:"positional,required" help:"search query"`
	Limit     int      `arg:"--limit,-l" help:"maximum number of results"`
	Topic     string   `arg:"--topic" help:"search category (general, news, finance)"`
	TimeRange string   `arg:"--time-range" help:"restrict results by age (day, week, month, year)"`
	Domains   []string `arg:"--domains" help:"only return results from these domains"`
	Raw       bool     `arg:"--raw" help:"include full page content with each result"`
}

type extractCmd struct {
	Urls  []string `arg:"positional,required" help:"urls to extract, up to 20"`
	Depth string   `arg:"--depth" help:"extraction depth (basic, advanced)"`
}

type crawlCmd struct {
	Url          string `arg:"positional,required" help:"seed url"`
	Instructions string `arg:"--instructions,-i" help:"natural language crawl instructions"`
}

type mapCmd struct {
	Url          string `arg:"positional,required" help:"seed url"`
	Instructions string `arg:"--instructions,-i" help:"natural language mapping instructions"`
}

type args struct {
	Search  *searchCmd  `arg:"subcommand:search" help:"query the web for ranked page summaries"`
	Extract *extractCmd `arg:"subcommand:extract" help:"fetch full page text for given urls"`
	Crawl   *crawlCmd   `arg:"subcommand:crawl" help:"recursively fetch a site's pages with content"`
	Map     *mapCmd     `arg:"subcommand:map" help:"discover a site's link structure without content"`

	Config  string `arg:"--config,-c" default:"scour.yaml" help:"path to config file"`
	Verbose bool   `arg:"--verbose,-v" help:"enable debug logging"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func (args) Epilogue() string {
	return fmt.Sprintf("For more information visit %s", RepositoryUrl)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: strings.ToLower(ProgramName)}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	level := slog.LevelInfo
	if args.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// credentials may live in a local .env file
	godotenv.Load()

	conf, err := ReadConfig(args.Config)
	if err != nil {
		log.Fatalf("failed to read config file '%s': %v", args.Config, err)
	}

	ret, err := newRetriever(conf)
	if err != nil {
		log.Fatalf("failed to initialize web retriever: %v", err)
	}

	var cmd func(context.Context, provider.WebRetriever, *config) error

	switch p.Subcommand().(type) {
	case *searchCmd:
		cmd = args.Search.run
	case *extractCmd:
		cmd = args.Extract.run
	case *crawlCmd:
		cmd = args.Crawl.run
	case *mapCmd:
		cmd = args.Map.run
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}

	if err := cmd(context.Background(), ret, conf); err != nil {
		log.Fatal(err)
	}
}

func newRetriever(conf *config) (provider.WebRetriever, error) {
	opts := make([]tavily.Option, 0, 3)
	if conf.Client.Endpoint != "" {
		opts = append(opts, tavily.WithEndpoint(conf.Client.Endpoint))
	}
	if conf.Client.TimeoutSeconds > 0 {
		opts = append(opts, tavily.WithTimeout(time.Duration(conf.Client.TimeoutSeconds)*time.Second))
	}
	opts = append(opts, tavily.WithMaxRetries(conf.Client.MaxRetries))

	return provider.NewWebRetriever(provider.WebRetrieverTypeTavily, opts...)
}

func (c searchCmd) run(ctx context.Context, ret provider.WebRetriever, conf *config) error {
	req := api.WebSearchRequest{
		Query:             c.Query,
		Limit:             c.Limit,
		Topic:             c.Topic,
		TimeRange:         c.TimeRange,
		IncludeDomains:    c.Domains,
		IncludeRawContent: c.Raw,
	}
	if req.Limit == 0 {
		req.Limit = conf.Search.Limit
	}
	if req.Topic == "" {
		req.Topic = conf.Search.Topic
	}

	resp, err := ret.Search(ctx, req)
	if err != nil {
		return err
	}

	for i, doc := range resp.Results {
		fmt.Printf("%d. %s (%.2f)\n", i+1, doc.Title, doc.Score)
		fmt.Printf("   %s\n", doc.Url)
		fmt.Printf("   %s\n", doc.Content)
		if doc.Raw != "" {
			fmt.Printf("   %s\n", doc.Raw)
		}
	}
	return nil
}

func (c extractCmd) run(ctx context.Context, ret provider.WebRetriever, conf *config) error {
	resp, err := ret.Extract(ctx, api.ExtractRequest{
		Urls:  c.Urls,
		Depth: c.Depth,
	})
	if err != nil {
		return err
	}

	for _, page := range resp.Results {
		fmt.Printf("--- %s\n", page.Url)
		fmt.Println(page.Raw)
	}
	for _, failed := range resp.Failed {
		slog.Warn("extraction failed", "url", failed.Url, "reason", failed.Reason)
	}
	return nil
}

func (c crawlCmd) run(ctx context.Context, ret provider.WebRetriever, conf *config) error {
	resp, err := ret.Crawl(ctx, api.CrawlRequest{
		Url:          c.Url,
		Instructions: c.Instructions,
	})
	if err != nil {
		return err
	}

	slog.Info("crawl complete", "base_url", resp.BaseUrl, "pages", len(resp.Results))
	for _, page := range resp.Results {
		fmt.Printf("--- %s\n", page.Url)
		fmt.Println(page.Raw)
	}
	return nil
}

func (c mapCmd) run(ctx context.Context, ret provider.WebRetriever, conf *config) error {
	resp, err := ret.Map(ctx, api.MapRequest{
		Url:          c.Url,
		Instructions: c.Instructions,
	})
	if err != nil {
		return err
	}

	slog.Info("map complete", "base_url", resp.BaseUrl, "urls", len(resp.Urls))
	for _, u := range resp.Urls {
		fmt.Println(u)
	}
	return nil
}
