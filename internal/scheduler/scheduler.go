// Package scheduler runs the periodic crawl triggers. The daily and hourly
// triggers are independent cron entries; each firing re-selects its active
// sources fresh and processes them sequentially, so remote sites see at
// most one request stream per trigger.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/reconcile"
	"github.com/jonesrussell/goleads/internal/repository"
	"github.com/jonesrussell/goleads/internal/scraper"
	"github.com/robfig/cron/v3"
)

// SourceLister selects sources for a trigger run.
type SourceLister interface {
	List(ctx context.Context, filter repository.SourceFilter) ([]models.Source, error)
}

// Crawler fetches and extracts one source.
type Crawler interface {
	CrawlSource(ctx context.Context, source *models.Source) ([]scraper.Candidate, error)
}

// CandidateProcessor folds one candidate into the lead store.
type CandidateProcessor interface {
	ProcessCandidate(ctx context.Context, candidate scraper.Candidate, source *models.Source) error
}

// Scheduler drives the crawl triggers.
type Scheduler struct {
	sources   SourceLister
	crawler   Crawler
	processor CandidateProcessor
	logger    logger.Logger
	cron      *cron.Cron

	// per-trigger guards: an overlapping firing is skipped so statistics
	// are never double-counted by an overrunning batch
	dailyRunning  atomic.Bool
	hourlyRunning atomic.Bool
}

func New(
	sources SourceLister,
	crawler Crawler,
	processor CandidateProcessor,
	log logger.Logger,
) *Scheduler {
	return &Scheduler{
		sources:   sources,
		crawler:   crawler,
		processor: processor,
		logger:    log,
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
}

// Start registers both triggers and starts the cron loop.
func (s *Scheduler) Start(cfg config.SchedulerConfig) error {
	if _, err := s.cron.AddFunc(cfg.DailySpec, func() {
		s.runTrigger(models.FrequencyDaily, &s.dailyRunning)
	}); err != nil {
		return fmt.Errorf("register daily trigger: %w", err)
	}

	if _, err := s.cron.AddFunc(cfg.HourlySpec, func() {
		s.runTrigger(models.FrequencyHourly, &s.hourlyRunning)
	}); err != nil {
		return fmt.Errorf("register hourly trigger: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Crawl scheduler started",
		logger.String("daily_spec", cfg.DailySpec),
		logger.String("hourly_spec", cfg.HourlySpec),
	)
	return nil
}

// Stop halts the cron loop and waits for a running batch to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Crawl scheduler stopped")
}

// runTrigger executes one firing for a crawl frequency. The selection
// criteria are re-evaluated fresh on every run; no state carries over.
func (s *Scheduler) runTrigger(frequency models.CrawlFrequency, running *atomic.Bool) {
	if !running.CompareAndSwap(false, true) {
		s.logger.Warn("Previous run still in progress, skipping firing",
			logger.String("frequency", string(frequency)),
		)
		return
	}
	defer running.Store(false)

	ctx := context.Background()
	s.logger.Info("Starting crawl batch", logger.String("frequency", string(frequency)))

	sources, err := s.sources.List(ctx, repository.SourceFilter{
		Frequency: frequency,
		Status:    models.CrawlActive,
	})
	if err != nil {
		s.logger.Error("Failed to select sources for batch",
			logger.String("frequency", string(frequency)),
			logger.Error(err),
		)
		return
	}

	for i := range sources {
		s.crawlSource(ctx, &sources[i])
	}

	s.logger.Info("Crawl batch complete",
		logger.String("frequency", string(frequency)),
		logger.Int("sources", len(sources)),
	)
}

// crawlSource processes one source. Every failure is contained here so a
// broken source never aborts the rest of the batch.
func (s *Scheduler) crawlSource(ctx context.Context, source *models.Source) {
	s.logger.Info("Crawling source", logger.String("domain", source.Domain))

	candidates, err := s.crawler.CrawlSource(ctx, source)
	if err != nil {
		s.logger.Error("Source crawl failed",
			logger.String("domain", source.Domain),
			logger.Error(err),
		)
		return
	}

	for _, candidate := range candidates {
		if procErr := s.processor.ProcessCandidate(ctx, candidate, source); procErr != nil {
			s.logger.Error("Candidate processing failed",
				logger.String("domain", source.Domain),
				logger.String("title", candidate.Title),
				logger.Error(procErr),
			)
		}
	}

	s.logger.Info("Completed source",
		logger.String("domain", source.Domain),
		logger.Int("candidates", len(candidates)),
	)
}

// ensure the production reconciler satisfies the processor contract
var _ CandidateProcessor = (*reconcile.Reconciler)(nil)
