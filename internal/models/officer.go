package models

import "time"

// NotificationPreferences are per-channel opt-in flags for an officer.
// ChatOptIn is a separate explicit consent gate on top of the chat flag.
type NotificationPreferences struct {
	Email     bool `json:"email"`
	SMS       bool `json:"sms"`
	Chat      bool `json:"chat"`
	ChatOptIn bool `json:"chatOptIn"`
}

// Officer is a sales officer who can own leads and receive notifications.
type Officer struct {
	ID          string                  `json:"id" db:"id"`
	Name        string                  `json:"name" db:"name"`
	Email       string                  `json:"email" db:"email"`
	Phone       string                  `json:"phone" db:"phone"`
	Territory   string                  `json:"territory" db:"territory"`
	Active      bool                    `json:"active" db:"active"`
	Preferences NotificationPreferences `json:"preferences" db:"preferences"`
	CreatedAt   time.Time               `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time               `json:"updatedAt" db:"updated_at"`
}
