// Package reconcile matches extracted candidates to existing leads or
// creates new ones, and re-runs inference over the merged signal history.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonesrussell/goleads/internal/inference"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/repository"
	"github.com/jonesrussell/goleads/internal/scraper"
)

// UnknownCompany is the sentinel identity when a candidate carries no
// usable company name.
const UnknownCompany = "Unknown Company"

// Follow-up deadlines for new leads.
const (
	tenderDueIn   = 24 * time.Hour
	outreachDueIn = 3 * 24 * time.Hour
)

// LeadStore is the lead persistence surface the reconciler needs.
type LeadStore interface {
	GetByCompanyName(ctx context.Context, name string) (*models.Lead, error)
	GetByID(ctx context.Context, id string) (*models.Lead, error)
	Create(ctx context.Context, lead *models.Lead) error
	Save(ctx context.Context, lead *models.Lead) error
}

// SourceStats increments per-source lead counters.
type SourceStats interface {
	IncrementLeadsGenerated(ctx context.Context, sourceID string) error
}

// OfficerStore finds owners for manual leads.
type OfficerStore interface {
	FirstActiveByTerritory(ctx context.Context, territory string) (*models.Officer, error)
}

// Notifier dispatches a new-lead notification to an owner. The concrete
// dispatcher records per-channel outcomes itself.
type Notifier interface {
	DispatchNewLead(ctx context.Context, officer *models.Officer, lead *models.Lead)
}

// EventPublisher announces lead lifecycle events. May be a no-op.
type EventPublisher interface {
	LeadCreated(lead *models.Lead)
	LeadUpdated(lead *models.Lead)
}

// Reconciler owns all lead mutations on the scraped and manual intake
// paths. Upserts for the same company identity are serialized through a
// per-key lock so concurrent crawls cannot create duplicate leads.
type Reconciler struct {
	leads    LeadStore
	stats    SourceStats
	officers OfficerStore
	engine   *inference.Engine
	notifier Notifier
	events   EventPublisher
	logger   logger.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(
	leads LeadStore,
	stats SourceStats,
	officers OfficerStore,
	engine *inference.Engine,
	notifier Notifier,
	events EventPublisher,
	log logger.Logger,
) *Reconciler {
	return &Reconciler{
		leads:    leads,
		stats:    stats,
		officers: officers,
		engine:   engine,
		notifier: notifier,
		events:   events,
		logger:   log,
		now:      time.Now,
		locks:    make(map[string]*sync.Mutex),
	}
}

// ProcessCandidate folds one extracted candidate into the lead store:
// either appending a signal to the existing lead for that company and
// re-scoring it over the full history, or creating a new lead.
func (r *Reconciler) ProcessCandidate(ctx context.Context, candidate scraper.Candidate, source *models.Source) error {
	companyName := CompanyIdentity(candidate)
	signal := r.buildSignal(candidate, source)

	unlock := r.lockIdentity(companyName)
	defer unlock()

	lead, err := r.leads.GetByCompanyName(ctx, companyName)
	switch {
	case err == nil:
		return r.mergeSignal(ctx, lead, signal)
	case errors.Is(err, repository.ErrNotFound):
		return r.createFromSignal(ctx, companyName, signal, source)
	default:
		return fmt.Errorf("lookup lead %q: %w", companyName, err)
	}
}

// mergeSignal appends the signal and recomputes recommendations over the
// concatenation of every historical signal text, not just the new one.
func (r *Reconciler) mergeSignal(ctx context.Context, lead *models.Lead, signal models.Signal) error {
	lead.Signals = append(lead.Signals, signal)

	now := r.now()
	allText := inference.CombinedSignalText(lead.Signals)
	lead.ProductRecommendations = r.engine.InferProducts(allText, lead.CompanyDetails.Industry)
	lead.LeadScore = inference.CalculateLeadScore(lead.CompanyDetails, lead.Signals, now)
	lead.Urgency = inference.DetermineUrgency(lead.LeadScore, lead.Signals, now)

	if err := r.leads.Save(ctx, lead); err != nil {
		return fmt.Errorf("save merged lead %q: %w", lead.CompanyName, err)
	}

	r.events.LeadUpdated(lead)
	latest := lead.LatestSignal()
	r.logger.Info("Updated existing lead",
		logger.String("company", lead.CompanyName),
		logger.Int("signals", len(lead.Signals)),
		logger.Float64("score", lead.LeadScore.Total),
		logger.String("latest_signal", latest.Source),
		logger.Time("latest_signal_at", latest.Timestamp),
	)
	return nil
}

func (r *Reconciler) createFromSignal(ctx context.Context, companyName string, signal models.Signal, source *models.Source) error {
	now := r.now()
	signals := []models.Signal{signal}

	lead := &models.Lead{
		CompanyName:            companyName,
		Signals:                signals,
		ProductRecommendations: r.engine.InferProducts(signal.ExtractedText, ""),
		Status:                 models.StatusNew,
	}
	lead.LeadScore = inference.CalculateLeadScore(lead.CompanyDetails, signals, now)
	lead.Urgency = inference.DetermineUrgency(lead.LeadScore, signals, now)

	if err := r.leads.Create(ctx, lead); err != nil {
		return fmt.Errorf("create lead %q: %w", companyName, err)
	}

	if err := r.stats.IncrementLeadsGenerated(ctx, source.ID); err != nil {
		r.logger.Error("Failed to increment leads generated",
			logger.String("domain", source.Domain),
			logger.Error(err),
		)
	}

	r.events.LeadCreated(lead)
	r.logger.Info("Created new lead",
		logger.String("company", companyName),
		logger.String("urgency", string(lead.Urgency)),
		logger.Float64("score", lead.LeadScore.Total),
	)
	return nil
}

func (r *Reconciler) buildSignal(candidate scraper.Candidate, source *models.Source) models.Signal {
	sourceURL := candidate.Link
	if sourceURL == "" {
		sourceURL = "https://" + source.Domain
	}
	keywords := candidate.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return models.Signal{
		Source:        source.Domain,
		SourceURL:     sourceURL,
		SourceType:    signalType(source.Category),
		ExtractedText: strings.TrimSpace(candidate.Title + " " + candidate.Description),
		Timestamp:     r.now(),
		Keywords:      keywords,
	}
}

func signalType(category models.SourceCategory) models.SourceType {
	switch category {
	case models.CategoryTender:
		return models.SourceTypeTender
	case models.CategoryCompanySite:
		return models.SourceTypeCompany
	case models.CategoryFiling:
		return models.SourceTypeFiling
	case models.CategoryDirectory:
		return models.SourceTypeDirectory
	default:
		return models.SourceTypeNews
	}
}

// CompanyIdentity derives the dedup key from a candidate: the organization
// field when present, else the title up to the first separator, else the
// UnknownCompany sentinel. Matching stays exact and case-sensitive.
func CompanyIdentity(candidate scraper.Candidate) string {
	if candidate.Organization != "" {
		return candidate.Organization
	}
	if candidate.Title != "" {
		name := candidate.Title
		if idx := strings.IndexAny(name, "-|"); idx >= 0 {
			name = name[:idx]
		}
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			return trimmed
		}
	}
	return UnknownCompany
}

// lockIdentity serializes upserts per company identity.
func (r *Reconciler) lockIdentity(name string) func() {
	r.mu.Lock()
	l, ok := r.locks[name]
	if !ok {
		l = &sync.Mutex{}
		r.locks[name] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
