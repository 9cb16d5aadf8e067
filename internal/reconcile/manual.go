package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonesrussell/goleads/internal/inference"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"github.com/jonesrussell/goleads/internal/repository"
)

// ManualLeadInput is the non-scraped intake payload.
type ManualLeadInput struct {
	CompanyName    string                `json:"companyName" binding:"required"`
	CompanyDetails models.CompanyDetails `json:"companyDetails"`
	Facilities     []models.Facility     `json:"facilities"`
	Signals        []models.Signal       `json:"signals" binding:"required"`
	Territory      string                `json:"territory"`
	Region         string                `json:"region"`
}

// CreateManual builds a lead from manually supplied signals, assigns the
// first active officer covering the territory, synthesizes a next action,
// and dispatches the new-lead notification when an owner was found.
func (r *Reconciler) CreateManual(ctx context.Context, input ManualLeadInput) (*models.Lead, error) {
	now := r.now()
	allText := inference.CombinedSignalText(input.Signals)

	lead := &models.Lead{
		CompanyName:            input.CompanyName,
		CompanyDetails:         input.CompanyDetails,
		Facilities:             input.Facilities,
		Signals:                input.Signals,
		ProductRecommendations: r.engine.InferProducts(allText, input.CompanyDetails.Industry),
		Status:                 models.StatusNew,
		Territory:              input.Territory,
		Region:                 input.Region,
	}
	lead.LeadScore = inference.CalculateLeadScore(lead.CompanyDetails, lead.Signals, now)
	lead.Urgency = inference.DetermineUrgency(lead.LeadScore, lead.Signals, now)
	lead.NextAction = r.suggestNextAction(lead)

	var owner *models.Officer
	if input.Territory != "" {
		found, err := r.officers.FirstActiveByTerritory(ctx, input.Territory)
		switch {
		case err == nil:
			owner = found
			lead.AssignedTo = &found.ID
		case errors.Is(err, repository.ErrNotFound):
			// no officer covers the territory; the lead stays unassigned
		default:
			return nil, fmt.Errorf("find officer for territory %q: %w", input.Territory, err)
		}
	}

	unlock := r.lockIdentity(lead.CompanyName)
	defer unlock()

	if err := r.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("create lead %q: %w", lead.CompanyName, err)
	}
	r.events.LeadCreated(lead)

	if owner != nil {
		r.notifier.DispatchNewLead(ctx, owner, lead)

		// sent regardless of per-channel outcomes: the dispatch attempt completed
		sentAt := r.now()
		lead.Metadata.NotificationSent = true
		lead.Metadata.NotificationSentAt = &sentAt
		if err := r.leads.Save(ctx, lead); err != nil {
			r.logger.Error("Failed to record notification state",
				logger.String("company", lead.CompanyName),
				logger.Error(err),
			)
		}
	}

	return lead, nil
}

func (r *Reconciler) suggestNextAction(lead *models.Lead) *models.NextAction {
	for _, s := range lead.Signals {
		if s.SourceType == models.SourceTypeTender {
			return &models.NextAction{
				Action:  "Review tender requirements and prepare proposal",
				DueDate: r.now().Add(tenderDueIn),
			}
		}
	}
	return &models.NextAction{
		Action:  "Initial contact call to introduce the product portfolio",
		DueDate: r.now().Add(outreachDueIn),
	}
}
