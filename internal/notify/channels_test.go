package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/goleads/internal/config"
	"github.com/jonesrussell/goleads/internal/logger"
)

func TestEmailChannel_NotConfigured(t *testing.T) {
	channel := NewEmailChannel(config.EmailConfig{}, logger.NewNop())

	result := channel.Send(context.Background(), "sharma@example.com", sampleLead())
	assert.False(t, result.Success)
	assert.Equal(t, ReasonNotConfigured, result.Reason)
}

func TestSMSChannel_NotConfigured(t *testing.T) {
	channel := NewSMSChannel(config.SMSConfig{}, logger.NewNop())

	result := channel.Send(context.Background(), "+911234567890", sampleLead())
	assert.False(t, result.Success)
	assert.Equal(t, ReasonNotConfigured, result.Reason)
}

func TestSMSChannel_Send(t *testing.T) {
	var payload map[string]string
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_ = json.NewEncoder(w).Encode(map[string]string{"message_id": "sms-42"})
	}))
	defer server.Close()

	channel := NewSMSChannel(config.SMSConfig{
		GatewayURL: server.URL,
		APIKey:     "secret",
		From:       "GOLEAD",
	}, logger.NewNop())

	result := channel.Send(context.Background(), "+911234567890", sampleLead())
	require.True(t, result.Success)
	assert.Equal(t, "sms-42", result.MessageID)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "+911234567890", payload["to"])
	assert.Equal(t, "GOLEAD", payload["from"])
	assert.Contains(t, payload["body"], "Acme Steel")
}

func TestSMSChannel_GatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	channel := NewSMSChannel(config.SMSConfig{GatewayURL: server.URL}, logger.NewNop())

	result := channel.Send(context.Background(), "+911234567890", sampleLead())
	assert.False(t, result.Success)
	assert.Contains(t, result.Reason, "502")
}

func TestChatChannel_Send(t *testing.T) {
	var payload map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	channel := NewChatChannel(config.ChatConfig{WebhookURL: server.URL}, logger.NewNop())

	result := channel.Send(context.Background(), "+911234567890", sampleLead())
	require.True(t, result.Success)
	assert.NotEmpty(t, result.MessageID)
	assert.Equal(t, "+911234567890", payload["recipient"])
	assert.Contains(t, payload["text"], "*New Lead Alert*")
}

func TestChatChannel_NotConfigured(t *testing.T) {
	channel := NewChatChannel(config.ChatConfig{}, logger.NewNop())

	result := channel.Send(context.Background(), "+911234567890", sampleLead())
	assert.Equal(t, ReasonNotConfigured, result.Reason)
}
