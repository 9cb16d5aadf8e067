package models

import (
	"errors"
	"fmt"
	"time"
)

// SourceCategory classifies what kind of site a crawl target is. Only the
// news category has extraction logic today; the rest are declared for
// future category-specific extractors.
type SourceCategory string

const (
	CategoryNews        SourceCategory = "news"
	CategoryTender      SourceCategory = "tender"
	CategoryCompanySite SourceCategory = "company_site"
	CategoryFiling      SourceCategory = "filing"
	CategoryDirectory   SourceCategory = "directory"
)

// CrawlFrequency is how often a source is scheduled for crawling.
type CrawlFrequency string

const (
	FrequencyHourly  CrawlFrequency = "hourly"
	FrequencyDaily   CrawlFrequency = "daily"
	FrequencyWeekly  CrawlFrequency = "weekly"
	FrequencyMonthly CrawlFrequency = "monthly"
)

// CrawlStatus is the operational state of a source.
type CrawlStatus string

const (
	CrawlActive  CrawlStatus = "active"
	CrawlPaused  CrawlStatus = "paused"
	CrawlFailed  CrawlStatus = "failed"
	CrawlPending CrawlStatus = "pending"
)

// RateLimit is a requests-per-period politeness budget.
type RateLimit struct {
	Requests int    `json:"requests"`
	Period   string `json:"period"` // "second" or "minute"
}

// DefaultFetchDelay applies when a source has no configured rate limit.
const DefaultFetchDelay = 2 * time.Second

// Delay converts the rate limit into a minimum delay between requests.
func (r *RateLimit) Delay() time.Duration {
	if r == nil || r.Requests <= 0 {
		return DefaultFetchDelay
	}
	period := time.Second
	if r.Period == "minute" {
		period = time.Minute
	}
	return period / time.Duration(r.Requests)
}

// CrawlPolicy restricts which paths may be fetched from a source.
type CrawlPolicy struct {
	AllowedPaths []string   `json:"allowedPaths,omitempty"`
	BlockedPaths []string   `json:"blockedPaths,omitempty"`
	RateLimit    *RateLimit `json:"rateLimit,omitempty"`
}

// SourceStatistics are running crawl counters. They only ever increase and
// are bumped exactly once per crawl attempt.
type SourceStatistics struct {
	TotalCrawls      int `json:"totalCrawls"`
	SuccessfulCrawls int `json:"successfulCrawls"`
	FailedCrawls     int `json:"failedCrawls"`
	LeadsGenerated   int `json:"leadsGenerated"`
}

// Source is a crawl target configuration. Domain is globally unique.
type Source struct {
	ID             string           `json:"id" db:"id"`
	Domain         string           `json:"domain" db:"domain"`
	Category       SourceCategory   `json:"category" db:"category"`
	AccessMethod   string           `json:"accessMethod" db:"access_method"`
	CrawlFrequency CrawlFrequency   `json:"crawlFrequency" db:"crawl_frequency"`
	TrustScore     float64          `json:"trustScore" db:"trust_score"`
	Policy         CrawlPolicy      `json:"policy" db:"policy"`
	CrawlStatus    CrawlStatus      `json:"crawlStatus" db:"crawl_status"`
	LastCrawled    *time.Time       `json:"lastCrawled,omitempty" db:"last_crawled"`
	Statistics     SourceStatistics `json:"statistics" db:"statistics"`
	AddedBy        string           `json:"addedBy,omitempty" db:"added_by"`
	Notes          string           `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`
}

// Validate checks required fields and enum values before persistence.
func (s *Source) Validate() error {
	if s.Domain == "" {
		return errors.New("domain is required")
	}
	switch s.Category {
	case CategoryNews, CategoryTender, CategoryCompanySite, CategoryFiling, CategoryDirectory:
	default:
		return fmt.Errorf("unknown category %q", s.Category)
	}
	switch s.CrawlFrequency {
	case FrequencyHourly, FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
	default:
		return fmt.Errorf("unknown crawl frequency %q", s.CrawlFrequency)
	}
	if s.TrustScore < 0 || s.TrustScore > 1 {
		return errors.New("trust score must be within [0,1]")
	}
	return nil
}
