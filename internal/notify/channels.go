package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
	"github.com/jonesrussell/goleads/internal/models"
)

const gatewayTimeout = 10 * time.Second

// EmailChannel sends plain-text lead alerts over SMTP.
type EmailChannel struct {
	cfg    config.EmailConfig
	logger logger.Logger
}

func NewEmailChannel(cfg config.EmailConfig, log logger.Logger) *EmailChannel {
	return &EmailChannel{cfg: cfg, logger: log}
}

func (c *EmailChannel) Name() ChannelName { return ChannelEmail }

func (c *EmailChannel) Send(_ context.Context, recipient string, lead *models.Lead) Result {
	if c.cfg.Host == "" || c.cfg.From == "" {
		c.logger.Warn("Email not configured, skipping notification")
		return Result{Reason: ReasonNotConfigured}
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		c.cfg.From, recipient, formatSubject(lead), formatEmailBody(lead))

	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	var auth smtp.Auth
	if c.cfg.User != "" {
		auth = smtp.PlainAuth("", c.cfg.User, c.cfg.Password, c.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, c.cfg.From, []string{recipient}, []byte(msg)); err != nil {
		c.logger.Error("Email notification failed",
			logger.String("recipient", recipient),
			logger.Error(err),
		)
		return Result{Reason: err.Error()}
	}

	messageID := uuid.New().String()
	c.logger.Info("Email sent",
		logger.String("recipient", recipient),
		logger.String("message_id", messageID),
	)
	return Result{Success: true, MessageID: messageID}
}

// SMSChannel posts lead alerts to an HTTP SMS gateway.
type SMSChannel struct {
	cfg    config.SMSConfig
	client *http.Client
	logger logger.Logger
}

func NewSMSChannel(cfg config.SMSConfig, log logger.Logger) *SMSChannel {
	return &SMSChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: gatewayTimeout},
		logger: log,
	}
}

func (c *SMSChannel) Name() ChannelName { return ChannelSMS }

func (c *SMSChannel) Send(ctx context.Context, recipient string, lead *models.Lead) Result {
	if c.cfg.GatewayURL == "" {
		c.logger.Warn("SMS gateway not configured, skipping notification")
		return Result{Reason: ReasonNotConfigured}
	}

	payload := map[string]string{
		"from": c.cfg.From,
		"to":   recipient,
		"body": formatShortMessage(lead),
	}
	messageID, err := c.postJSON(ctx, c.cfg.GatewayURL, c.cfg.APIKey, payload)
	if err != nil {
		c.logger.Error("SMS notification failed",
			logger.String("recipient", recipient),
			logger.Error(err),
		)
		return Result{Reason: err.Error()}
	}

	c.logger.Info("SMS sent",
		logger.String("recipient", recipient),
		logger.String("message_id", messageID),
	)
	return Result{Success: true, MessageID: messageID}
}

func (c *SMSChannel) postJSON(ctx context.Context, url, apiKey string, payload any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("post to gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var result struct {
		MessageID string `json:"message_id"`
	}
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil || result.MessageID == "" {
		return uuid.New().String(), nil
	}
	return result.MessageID, nil
}

// ChatChannel posts lead alerts to an incoming chat webhook.
type ChatChannel struct {
	cfg    config.ChatConfig
	client *http.Client
	logger logger.Logger
}

func NewChatChannel(cfg config.ChatConfig, log logger.Logger) *ChatChannel {
	return &ChatChannel{
		cfg:    cfg,
		client: &http.Client{Timeout: gatewayTimeout},
		logger: log,
	}
}

func (c *ChatChannel) Name() ChannelName { return ChannelChat }

func (c *ChatChannel) Send(ctx context.Context, recipient string, lead *models.Lead) Result {
	if c.cfg.WebhookURL == "" {
		c.logger.Warn("Chat webhook not configured, skipping notification")
		return Result{Reason: ReasonNotConfigured}
	}

	payload := map[string]string{
		"recipient": recipient,
		"text":      formatChatMessage(lead),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Result{Reason: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return Result{Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("Chat notification failed",
			logger.String("recipient", recipient),
			logger.Error(err),
		)
		return Result{Reason: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{Reason: fmt.Sprintf("webhook returned status %d", resp.StatusCode)}
	}

	messageID := uuid.New().String()
	c.logger.Info("Chat message sent",
		logger.String("recipient", recipient),
		logger.String("message_id", messageID),
	)
	return Result{Success: true, MessageID: messageID}
}
