package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadStatus_Valid(t *testing.T) {
	for _, status := range []LeadStatus{
		StatusNew, StatusContacted, StatusQualified, StatusNegotiation,
		StatusWon, StatusLost, StatusRejected,
	} {
		assert.True(t, status.Valid(), string(status))
	}

	assert.False(t, LeadStatus("archived").Valid())
	assert.False(t, LeadStatus("").Valid())
}

func TestLead_LatestSignal(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	lead := &Lead{
		Signals: []Signal{
			{Source: "a.com", Timestamp: base},
			{Source: "c.com", Timestamp: base.Add(48 * time.Hour)},
			{Source: "b.com", Timestamp: base.Add(24 * time.Hour)},
		},
	}

	latest := lead.LatestSignal()
	require.NotNil(t, latest)
	assert.Equal(t, "c.com", latest.Source)

	empty := &Lead{}
	assert.Nil(t, empty.LatestSignal())
}

func TestLead_LatestSignal_TieKeepsFirst(t *testing.T) {
	ts := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	lead := &Lead{
		Signals: []Signal{
			{Source: "first.com", Timestamp: ts},
			{Source: "second.com", Timestamp: ts},
		},
	}

	latest := lead.LatestSignal()
	require.NotNil(t, latest)
	assert.Equal(t, "first.com", latest.Source)
}
