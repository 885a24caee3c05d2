package ports

import "github.com/shoporbit/console-gateway/internal/core/domain"

// Notifier is the process-wide fan-out channel for toast notifications.
type Notifier interface {
	Push(message string, severity domain.Severity, title string) domain.Toast
	Dismiss(id int64)
	Active() []domain.Toast
}
