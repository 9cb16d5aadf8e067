package scraper

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonesrussell/goleads/internal/catalog"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

// Candidate is one extracted signal record: the fields the extraction
// stage must yield for reconciliation to consume.
type Candidate struct {
	Title        string
	Description  string
	Organization string
	Link         string
	DateText     string
	Keywords     []string
}

// Extractor turns fetched documents into candidate signal records.
type Extractor struct {
	fetcher    *Fetcher
	vocabulary []string
	logger     logger.Logger
}

func NewExtractor(fetcher *Fetcher, cat *catalog.Catalog, log logger.Logger) *Extractor {
	return &Extractor{
		fetcher:    fetcher,
		vocabulary: cat.Vocabulary,
		logger:     log,
	}
}

// CrawlSource fetches a source and extracts its candidates. Only the news
// category has extraction logic; other categories are declared in the data
// model but return ErrUnsupportedCategory until their extractors exist.
func (e *Extractor) CrawlSource(ctx context.Context, source *models.Source) ([]Candidate, error) {
	if source.Category != models.CategoryNews {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCategory, source.Category)
	}

	doc, err := e.fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}

	candidates := e.extractNews(doc)
	e.logger.Info("Extraction complete",
		logger.String("domain", source.Domain),
		logger.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// extractNews scans article-shaped nodes for titles, descriptions, links,
// and dates. Candidates without any product-related keyword are dropped
// here; that is an extraction filter, not a pipeline failure.
func (e *Extractor) extractNews(doc *goquery.Document) []Candidate {
	var candidates []Candidate

	doc.Find("article, .news-item, .article-item, [class*=news]").Each(func(_ int, sel *goquery.Selection) {
		candidate := Candidate{
			Title:       strings.TrimSpace(sel.Find("h1, h2, h3, .title").First().Text()),
			Description: strings.TrimSpace(sel.Find("p, .description").First().Text()),
			DateText:    strings.TrimSpace(sel.Find("time, .date, [class*=date]").First().Text()),
		}
		if link, ok := sel.Find("a").First().Attr("href"); ok {
			candidate.Link = link
		}

		candidate.Keywords = e.scanKeywords(candidate.Title + " " + candidate.Description)
		if len(candidate.Keywords) == 0 {
			return
		}
		candidates = append(candidates, candidate)
	})

	return candidates
}

// scanKeywords matches the fixed product vocabulary against text,
// preserving vocabulary order.
func (e *Extractor) scanKeywords(text string) []string {
	lower := strings.ToLower(text)
	var matched []string
	for _, term := range e.vocabulary {
		if strings.Contains(lower, term) {
			matched = append(matched, term)
		}
	}
	return matched
}
