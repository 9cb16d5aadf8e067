// Package events publishes lead lifecycle events to a Redis stream for
// downstream consumers. Publishing is optional; a nil publisher is a no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
	"github.com/redis/go-redis/v9"
)

// StreamName is the Redis stream lead events are appended to.
const StreamName = "goleads:lead-events"

const publishTimeout = 5 * time.Second

// EventType identifies a lead lifecycle event.
type EventType string

const (
	EventLeadCreated EventType = "lead.created"
	EventLeadUpdated EventType = "lead.updated"
)

// LeadEvent is the published payload.
type LeadEvent struct {
	EventID     uuid.UUID      `json:"event_id"`
	EventType   EventType      `json:"event_type"`
	LeadID      string         `json:"lead_id"`
	CompanyName string         `json:"company_name"`
	Urgency     models.Urgency `json:"urgency"`
	Score       float64        `json:"score"`
	Timestamp   time.Time      `json:"timestamp"`
}

// Publisher appends lead events to the Redis stream.
type Publisher struct {
	client *redis.Client
	log    logger.Logger
}

// NewPublisher creates a publisher. Returns nil when client is nil so the
// nil-receiver no-op methods apply.
func NewPublisher(client *redis.Client, log logger.Logger) *Publisher {
	if client == nil {
		return nil
	}
	return &Publisher{client: client, log: log}
}

// Publish appends one event to the stream.
func (p *Publisher) Publish(ctx context.Context, event LeadEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	result := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: StreamName,
		Values: map[string]any{"event": string(payload)},
	})
	if publishErr := result.Err(); publishErr != nil {
		p.log.Error("Failed to publish lead event",
			logger.String("event_type", string(event.EventType)),
			logger.String("lead_id", event.LeadID),
			logger.Error(publishErr),
		)
		return fmt.Errorf("publish to stream: %w", publishErr)
	}
	return nil
}

// LeadCreated publishes asynchronously; errors are logged, not returned.
func (p *Publisher) LeadCreated(lead *models.Lead) {
	p.publishAsync(EventLeadCreated, lead)
}

// LeadUpdated publishes asynchronously; errors are logged, not returned.
func (p *Publisher) LeadUpdated(lead *models.Lead) {
	p.publishAsync(EventLeadUpdated, lead)
}

func (p *Publisher) publishAsync(eventType EventType, lead *models.Lead) {
	if p == nil {
		return
	}
	event := LeadEvent{
		EventType:   eventType,
		LeadID:      lead.ID,
		CompanyName: lead.CompanyName,
		Urgency:     lead.Urgency,
		Score:       lead.LeadScore.Total,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		_ = p.Publish(ctx, event)
	}()
}
