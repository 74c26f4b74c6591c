package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/matsen/insp/internal/aggregate"
	"github.com/matsen/insp/internal/inspire"
)

// newClient builds an INSPIRE client from the loaded configuration.
func newClient() *inspire.Client {
	return inspire.NewClient(
		inspire.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
		inspire.WithBaseURL(cfg.BaseURL),
		inspire.WithMaxAttempts(cfg.MaxAttempts),
		inspire.WithBackoff(cfg.RateLimitBackoff),
		inspire.WithCacheTTL(cfg.CacheTTL),
		inspire.WithLogger(logger),
		inspire.WithMetrics(stats),
	)
}

// commandContext returns a context canceled on interrupt.
func commandContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// mustParseIdentifier classifies the author argument, exits on error.
func mustParseIdentifier(arg string) inspire.Identifier {
	id, err := inspire.ParseIdentifier(arg)
	if err != nil {
		exitWithError(ExitError, "invalid author identifier: %v", err)
	}
	return id
}

// mustLoadAuthor fetches the records of the author named by arg, exits on
// error. Fetch failures leave the aggregate empty rather than failing.
func mustLoadAuthor(ctx context.Context, client *inspire.Client, arg string) *aggregate.Author {
	id := mustParseIdentifier(arg)
	a, err := aggregate.Load(ctx, client, id, cfg.MaxPapers,
		aggregate.WithLogger(logger),
		aggregate.WithMetrics(stats),
	)
	if err != nil {
		exitWithError(ExitError, "loading %s: %v", id.Value, err)
	}

	all := aggregate.Filter{}
	stats.SetTotals(a.Count(all), a.TotalCitations(true, all), a.TotalCitations(false, all))
	return a
}
