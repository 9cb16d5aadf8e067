// Package models defines the lead, source, and officer records and their
// database column types.
package models

import (
	"time"
)

// Urgency is the coarse priority tier of a lead.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)

// LeadStatus is the sales pipeline state of a lead.
type LeadStatus string

const (
	StatusNew         LeadStatus = "new"
	StatusContacted   LeadStatus = "contacted"
	StatusQualified   LeadStatus = "qualified"
	StatusNegotiation LeadStatus = "negotiation"
	StatusWon         LeadStatus = "won"
	StatusLost        LeadStatus = "lost"
	StatusRejected    LeadStatus = "rejected"
)

// Valid reports whether s is a known pipeline state.
func (s LeadStatus) Valid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusQualified, StatusNegotiation,
		StatusWon, StatusLost, StatusRejected:
		return true
	}
	return false
}

// SourceType classifies where a signal was observed.
type SourceType string

const (
	SourceTypeNews      SourceType = "news"
	SourceTypeTender    SourceType = "tender"
	SourceTypeCompany   SourceType = "company_website"
	SourceTypeFiling    SourceType = "filing"
	SourceTypeDirectory SourceType = "directory"
)

// Signal is one observed mention of a prospect. Signals are immutable once
// created; a lead's signal history is append-only.
type Signal struct {
	Source        string     `json:"source"`
	SourceURL     string     `json:"sourceUrl"`
	SourceType    SourceType `json:"sourceType"`
	ExtractedText string     `json:"extractedText"`
	Timestamp     time.Time  `json:"timestamp"`
	Keywords      []string   `json:"keywords"`
}

// ProductRecommendation is one inference output. Confidence only ever
// increases during a single inference pass.
type ProductRecommendation struct {
	Product     string   `json:"product"`
	ProductName string   `json:"productName"`
	Category    string   `json:"category"`
	Confidence  float64  `json:"confidence"`
	ReasonCodes []string `json:"reasonCodes"`
	Keywords    []string `json:"keywords"`
}

// LeadScore is the weighted 0-100 assessment. Total is always the sum of
// the four sub-scores; it is recomputed wholesale, never patched.
type LeadScore struct {
	Total          float64 `json:"total"`
	IntentStrength float64 `json:"intentStrength"`
	Freshness      float64 `json:"freshness"`
	CompanySize    float64 `json:"companySize"`
	Proximity      float64 `json:"proximity"`
}

// Coordinates is an optional lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// CompanyDetails holds free-form company identity fields. All fields are
// optional; absence is meaningful (e.g. unknown turnover scores lower).
type CompanyDetails struct {
	CIN         string       `json:"cin,omitempty"`
	GST         string       `json:"gst,omitempty"`
	Website     string       `json:"website,omitempty"`
	Industry    string       `json:"industry,omitempty"`
	Sector      string       `json:"sector,omitempty"`
	Turnover    string       `json:"turnover,omitempty"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Facility is a known plant or site belonging to the company.
type Facility struct {
	Location    string       `json:"location"`
	Type        string       `json:"type,omitempty"`
	Capacity    string       `json:"capacity,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// NextAction is the suggested follow-up for the assigned officer.
type NextAction struct {
	Action  string    `json:"action"`
	DueDate time.Time `json:"dueDate"`
	Notes   string    `json:"notes,omitempty"`
}

// Feedback records the outcome of a human review of the lead.
type Feedback struct {
	Accepted        bool      `json:"accepted"`
	Converted       bool      `json:"converted"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	FeedbackDate    time.Time `json:"feedbackDate"`
	Notes           string    `json:"notes,omitempty"`
}

// ContactAttempt is one entry in the append-only contact log.
type ContactAttempt struct {
	Date    time.Time `json:"date"`
	Method  string    `json:"method"`
	Outcome string    `json:"outcome"`
	Notes   string    `json:"notes,omitempty"`
}

// LeadMetadata carries discovery and notification bookkeeping.
type LeadMetadata struct {
	DiscoveredAt       time.Time  `json:"discoveredAt"`
	LastUpdated        time.Time  `json:"lastUpdated"`
	NotificationSent   bool       `json:"notificationSent"`
	NotificationSentAt *time.Time `json:"notificationSentAt,omitempty"`
}

// Lead is the central aggregate. Company name is the natural dedup key
// (exact, case-sensitive match).
type Lead struct {
	ID                     string                  `json:"id" db:"id"`
	CompanyName            string                  `json:"companyName" db:"company_name"`
	CompanyDetails         CompanyDetails          `json:"companyDetails" db:"company_details"`
	Facilities             []Facility              `json:"facilities" db:"facilities"`
	ProductRecommendations []ProductRecommendation `json:"productRecommendations" db:"product_recommendations"`
	Signals                []Signal                `json:"signals" db:"signals"`
	LeadScore              LeadScore               `json:"leadScore" db:"lead_score"`
	Urgency                Urgency                 `json:"urgency" db:"urgency"`
	Status                 LeadStatus              `json:"status" db:"status"`
	AssignedTo             *string                 `json:"assignedTo,omitempty" db:"assigned_to"`
	Territory              string                  `json:"territory,omitempty" db:"territory"`
	Region                 string                  `json:"region,omitempty" db:"region"`
	NextAction             *NextAction             `json:"nextAction,omitempty" db:"next_action"`
	Feedback               *Feedback               `json:"feedback,omitempty" db:"feedback"`
	ContactAttempts        []ContactAttempt        `json:"contactAttempts" db:"contact_attempts"`
	Metadata               LeadMetadata            `json:"metadata" db:"metadata"`
	CreatedAt              time.Time               `json:"createdAt" db:"created_at"`
	UpdatedAt              time.Time               `json:"updatedAt" db:"updated_at"`
}

// LatestSignal returns the signal with the maximum timestamp, or nil when
// the history is empty. Ties resolve to the first seen.
func (l *Lead) LatestSignal() *Signal {
	if len(l.Signals) == 0 {
		return nil
	}
	latest := &l.Signals[0]
	for i := range l.Signals[1:] {
		s := &l.Signals[i+1]
		if s.Timestamp.After(latest.Timestamp) {
			latest = s
		}
	}
	return latest
}
