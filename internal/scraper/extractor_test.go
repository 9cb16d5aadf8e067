package scraper

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/catalog"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

func newTestExtractor() *Extractor {
	return NewExtractor(nil, catalog.Default(), logger.NewNop())
}

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractNews(t *testing.T) {
	const page = `
<html><body>
  <article>
    <h2>Acme Steel - furnace oil tender floated</h2>
    <p>The plant seeks annual furnace oil supply for its boiler.</p>
    <a href="https://example.com/acme-tender">Read more</a>
    <time>2026-03-01</time>
  </article>
  <div class="news-item">
    <h3>Quarterly results announced</h3>
    <p>Revenue grew eight percent year on year.</p>
  </div>
  <div class="news-item">
    <h3>Mills order diesel gensets</h3>
    <p>Captive power capacity to expand.</p>
  </div>
</body></html>`

	extractor := newTestExtractor()
	candidates := extractor.extractNews(parseDoc(t, page))

	// the results-only item carries no product keyword and is dropped
	require.Len(t, candidates, 2)

	first := candidates[0]
	assert.Equal(t, "Acme Steel - furnace oil tender floated", first.Title)
	assert.Equal(t, "The plant seeks annual furnace oil supply for its boiler.", first.Description)
	assert.Equal(t, "https://example.com/acme-tender", first.Link)
	assert.Equal(t, "2026-03-01", first.DateText)
	assert.Contains(t, first.Keywords, "furnace oil")
	assert.Contains(t, first.Keywords, "boiler")

	second := candidates[1]
	assert.Contains(t, second.Keywords, "diesel")
	assert.Contains(t, second.Keywords, "captive power")
	assert.Empty(t, second.Link)
}

func TestExtractNews_EmptyPage(t *testing.T) {
	extractor := newTestExtractor()
	candidates := extractor.extractNews(parseDoc(t, "<html><body><p>nothing here</p></body></html>"))
	assert.Empty(t, candidates)
}

func TestScanKeywords_PreservesVocabularyOrder(t *testing.T) {
	extractor := newTestExtractor()

	keywords := extractor.scanKeywords("Boiler fed with Furnace Oil and DIESEL")
	assert.Equal(t, []string{"furnace oil", "diesel", "boiler"}, keywords)
}

func TestCrawlSource_UnsupportedCategory(t *testing.T) {
	extractor := newTestExtractor()

	_, err := extractor.CrawlSource(context.Background(), &models.Source{
		Domain:   "tenders.example.com",
		Category: models.CategoryTender,
	})
	assert.ErrorIs(t, err, ErrUnsupportedCategory)
}
