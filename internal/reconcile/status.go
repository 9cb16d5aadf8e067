package reconcile

import (
	"context"
	"fmt"

	"github.com/jonesrussell/goleads/internal/models"
)

// OutcomeConnected is the contact outcome that forces the contacted state.
const OutcomeConnected = "connected"

// ApplyContactAttempt appends an attempt to the lead's contact log. A
// connected outcome forces status to contacted, overriding whatever state
// the lead was in.
func (r *Reconciler) ApplyContactAttempt(ctx context.Context, leadID string, attempt models.ContactAttempt) (*models.Lead, error) {
	lead, err := r.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if attempt.Date.IsZero() {
		attempt.Date = r.now()
	}
	lead.ContactAttempts = append(lead.ContactAttempts, attempt)

	if attempt.Outcome == OutcomeConnected {
		lead.Status = models.StatusContacted
	}

	if saveErr := r.leads.Save(ctx, lead); saveErr != nil {
		return nil, fmt.Errorf("save contact attempt: %w", saveErr)
	}
	r.events.LeadUpdated(lead)
	return lead, nil
}

// ApplyFeedback records a review outcome. Converted forces won; a
// not-accepted review forces rejected; an accepted, unconverted review
// leaves the status alone.
func (r *Reconciler) ApplyFeedback(ctx context.Context, leadID string, feedback models.Feedback) (*models.Lead, error) {
	lead, err := r.leads.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if feedback.FeedbackDate.IsZero() {
		feedback.FeedbackDate = r.now()
	}
	lead.Feedback = &feedback

	switch {
	case feedback.Converted:
		lead.Status = models.StatusWon
	case !feedback.Accepted:
		lead.Status = models.StatusRejected
	}

	if saveErr := r.leads.Save(ctx, lead); saveErr != nil {
		return nil, fmt.Errorf("save feedback: %w", saveErr)
	}
	r.events.LeadUpdated(lead)
	return lead, nil
}
