// Package scraper fetches source pages under the politeness contract and
// extracts candidate signal records from them.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"golang.org/x/time/rate"
)

// ErrSourceInactive is a policy error: the source's crawl status forbids
// fetching. It aborts that source's crawl only.
var ErrSourceInactive = errors.New("source is not active")

// ErrUnsupportedCategory marks source categories that have no extraction
// implementation yet.
var ErrUnsupportedCategory = errors.New("no extractor for source category")

// CrawlStatsRecorder updates a source's crawl counters exactly once per
// attempt.
type CrawlStatsRecorder interface {
	RecordCrawl(ctx context.Context, sourceID string, success bool) error
}

// Fetcher retrieves source pages, enforcing crawl status and per-source
// rate limits, and keeps crawl statistics.
type Fetcher struct {
	client   *http.Client
	stats    CrawlStatsRecorder
	logger   logger.Logger
	ua       string
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewFetcher(cfg config.ScraperConfig, stats CrawlStatsRecorder, log logger.Logger) *Fetcher {
	return &Fetcher{
		client:   &http.Client{Timeout: cfg.FetchTimeout},
		stats:    stats,
		logger:   log,
		ua:       cfg.UserAgent,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Fetch retrieves the source's root page as a parsed document. It verifies
// the crawl status, waits out the source's rate limit, and records every
// attempt in the source statistics. A fetch refused by crawl status counts
// as a failed attempt.
func (f *Fetcher) Fetch(ctx context.Context, source *models.Source) (*goquery.Document, error) {
	if source.CrawlStatus != models.CrawlActive {
		f.recordCrawl(ctx, source, false)
		return nil, fmt.Errorf("%w: %s is %s", ErrSourceInactive, source.Domain, source.CrawlStatus)
	}

	if err := f.limiter(source).Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	doc, err := f.fetchDocument(ctx, "https://"+source.Domain)
	f.recordCrawl(ctx, source, err == nil)

	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (f *Fetcher) recordCrawl(ctx context.Context, source *models.Source, success bool) {
	if err := f.stats.RecordCrawl(ctx, source.ID, success); err != nil {
		f.logger.Error("Failed to record crawl statistics",
			logger.String("domain", source.Domain),
			logger.Error(err),
		)
	}
}

func (f *Fetcher) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// limiter returns the per-domain rate limiter, building it from the
// source's configured requests-per-period budget on first use.
func (f *Fetcher) limiter(source *models.Source) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()

	if l, ok := f.limiters[source.Domain]; ok {
		return l
	}
	delay := source.Policy.RateLimit.Delay()
	l := rate.NewLimiter(rate.Every(delay), 1)
	f.limiters[source.Domain] = l
	return l
}
