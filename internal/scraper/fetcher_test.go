package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

type fakeStats struct {
	calls []bool
}

func (s *fakeStats) RecordCrawl(_ context.Context, _ string, success bool) error {
	s.calls = append(s.calls, success)
	return nil
}

func newTestFetcher(stats *fakeStats) *Fetcher {
	return NewFetcher(config.ScraperConfig{
		UserAgent:    "GoLeads-Bot/1.0 (Business Intelligence)",
		FetchTimeout: 5 * time.Second,
	}, stats, logger.NewNop())
}

func activeSource(domain string) *models.Source {
	return &models.Source{
		ID:          "src-1",
		Domain:      domain,
		Category:    models.CategoryNews,
		CrawlStatus: models.CrawlActive,
	}
}

func TestFetch_InactiveSourceRefused(t *testing.T) {
	stats := &fakeStats{}
	fetcher := newTestFetcher(stats)

	source := activeSource("example.com")
	source.CrawlStatus = models.CrawlPaused

	_, err := fetcher.Fetch(context.Background(), source)
	assert.ErrorIs(t, err, ErrSourceInactive)
	assert.Equal(t, []bool{false}, stats.calls, "refused fetches count as failed crawl attempts")
}

func TestFetch_RecordsCrawlOncePerAttempt(t *testing.T) {
	var gotUA string
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><article><h2>ok</h2></article></body></html>"))
	}))
	defer server.Close()

	stats := &fakeStats{}
	fetcher := newTestFetcher(stats)
	fetcher.client = server.Client()

	doc, err := fetcher.Fetch(context.Background(), activeSource(strings.TrimPrefix(server.URL, "https://")))
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.Equal(t, "GoLeads-Bot/1.0 (Business Intelligence)", gotUA)
	assert.Equal(t, []bool{true}, stats.calls)
}

func TestFetch_ServerErrorCountsAsFailedCrawl(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	stats := &fakeStats{}
	fetcher := newTestFetcher(stats)
	fetcher.client = server.Client()

	_, err := fetcher.Fetch(context.Background(), activeSource(strings.TrimPrefix(server.URL, "https://")))
	assert.Error(t, err)
	assert.Equal(t, []bool{false}, stats.calls)
}

func TestLimiter_ReusedPerDomain(t *testing.T) {
	fetcher := newTestFetcher(&fakeStats{})

	a := fetcher.limiter(activeSource("a.com"))
	b := fetcher.limiter(activeSource("b.com"))
	assert.Same(t, a, fetcher.limiter(activeSource("a.com")))
	assert.NotSame(t, a, b)
}
