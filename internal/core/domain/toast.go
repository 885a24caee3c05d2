package domain

import "time"

// Severity grades a toast notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Toast is an ephemeral notification visible to the whole console until it
// expires or is dismissed. IDs are monotonic and time-derived.
type Toast struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title,omitempty"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}
