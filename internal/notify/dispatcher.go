package notify

import (
	"context"

	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

// Dispatcher fans one lead alert out to every channel the officer has
// opted into. Channels are called independently; one channel failing never
// blocks another.
type Dispatcher struct {
	email  Channel
	sms    Channel
	chat   Channel
	logger logger.Logger
}

func NewDispatcher(email, sms, chat Channel, log logger.Logger) *Dispatcher {
	return &Dispatcher{email: email, sms: sms, chat: chat, logger: log}
}

// DispatchResults holds one result per attempted channel.
type DispatchResults map[ChannelName]Result

// Dispatch sends the alert over each enabled, eligible channel and returns
// the outcomes keyed by each channel's reported name. Chat requires both
// the channel flag and the explicit chat opt-in.
func (d *Dispatcher) Dispatch(ctx context.Context, officer *models.Officer, lead *models.Lead) DispatchResults {
	results := make(DispatchResults)
	prefs := officer.Preferences

	if prefs.Email && officer.Email != "" {
		results[d.email.Name()] = d.email.Send(ctx, officer.Email, lead)
	}
	if prefs.SMS && officer.Phone != "" {
		results[d.sms.Name()] = d.sms.Send(ctx, officer.Phone, lead)
	}
	if prefs.Chat && prefs.ChatOptIn && officer.Phone != "" {
		results[d.chat.Name()] = d.chat.Send(ctx, officer.Phone, lead)
	}

	return results
}

// DispatchNewLead is the reconciliation-facing entry point: it dispatches
// and logs the aggregate outcome.
func (d *Dispatcher) DispatchNewLead(ctx context.Context, officer *models.Officer, lead *models.Lead) {
	results := d.Dispatch(ctx, officer, lead)

	succeeded, failed := 0, 0
	for name, result := range results {
		if result.Success {
			succeeded++
			continue
		}
		failed++
		d.logger.Warn("Notification channel did not deliver",
			logger.String("channel", string(name)),
			logger.String("reason", result.Reason),
			logger.String("company", lead.CompanyName),
		)
	}

	d.logger.Info("Lead notification dispatched",
		logger.String("company", lead.CompanyName),
		logger.String("officer", officer.Name),
		logger.Int("channels_succeeded", succeeded),
		logger.Int("channels_failed", failed),
	)
}
