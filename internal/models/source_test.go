package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimit_Delay(t *testing.T) {
	tests := []struct {
		name  string
		limit *RateLimit
		want  time.Duration
	}{
		{name: "nil limit uses default", limit: nil, want: DefaultFetchDelay},
		{name: "zero requests uses default", limit: &RateLimit{Requests: 0, Period: "second"}, want: DefaultFetchDelay},
		{name: "one per second", limit: &RateLimit{Requests: 1, Period: "second"}, want: time.Second},
		{name: "four per second", limit: &RateLimit{Requests: 4, Period: "second"}, want: 250 * time.Millisecond},
		{name: "ten per minute", limit: &RateLimit{Requests: 10, Period: "minute"}, want: 6 * time.Second},
		{name: "unknown period behaves like second", limit: &RateLimit{Requests: 2, Period: "fortnight"}, want: 500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.limit.Delay())
		})
	}
}

func TestSource_Validate(t *testing.T) {
	valid := func() *Source {
		return &Source{
			Domain:         "news.example.com",
			Category:       CategoryNews,
			CrawlFrequency: FrequencyDaily,
			TrustScore:     0.8,
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Source)
		wantErr string
	}{
		{name: "valid source", mutate: func(*Source) {}},
		{name: "missing domain", mutate: func(s *Source) { s.Domain = "" }, wantErr: "domain is required"},
		{name: "unknown category", mutate: func(s *Source) { s.Category = "blog" }, wantErr: "unknown category"},
		{name: "unknown frequency", mutate: func(s *Source) { s.CrawlFrequency = "fortnightly" }, wantErr: "unknown crawl frequency"},
		{name: "trust score above range", mutate: func(s *Source) { s.TrustScore = 1.5 }, wantErr: "trust score"},
		{name: "trust score below range", mutate: func(s *Source) { s.TrustScore = -0.1 }, wantErr: "trust score"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
