// Package notify delivers new-lead alerts to sales officers over their
// opted-in channels. A misconfigured channel degrades to a not-configured
// result instead of failing.
package notify

import (
	"context"

	"github.com/jonesrussell/goleads/internal/models"
)

// ChannelName identifies a delivery channel.
type ChannelName string

const (
	ChannelEmail ChannelName = "email"
	ChannelSMS   ChannelName = "sms"
	ChannelChat  ChannelName = "chat"
)

// ReasonNotConfigured marks a channel skipped for missing configuration.
const ReasonNotConfigured = "not_configured"

// Result is the outcome of one channel send.
type Result struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// Channel sends a formatted lead alert to one recipient address.
// Implementations never return an error for missing configuration; they
// return a Result with ReasonNotConfigured instead.
type Channel interface {
	Name() ChannelName
	Send(ctx context.Context, recipient string, lead *models.Lead) Result
}
