// Package notify implements the process-wide toast notification channel.
package notify

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/api/metrics"
	"github.com/shoporbit/console-gateway/internal/core/domain"
)

// DefaultTTL is how long a toast stays in the active set unless dismissed.
const DefaultTTL = 5 * time.Second

// Center fans transient notifications out to the whole console. Every pushed
// toast stays visible for the configured TTL unless dismissed earlier;
// expiry and manual dismissal share one idempotent removal path. The active
// set is insertion-ordered and otherwise unbounded.
type Center struct {
	ttl time.Duration
	log zerolog.Logger

	mu     sync.Mutex
	lastID int64
	order  []int64
	items  map[int64]domain.Toast
	timers map[int64]*time.Timer
}

func NewCenter(ttl time.Duration, log zerolog.Logger) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{
		ttl:    ttl,
		log:    log.With().Str("component", "notify").Logger(),
		items:  make(map[int64]domain.Toast),
		timers: make(map[int64]*time.Timer),
	}
}

// Push adds a toast to the active set and schedules its expiry.
func (c *Center) Push(message string, severity domain.Severity, title string) domain.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := time.Now().UnixNano()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id

	toast := domain.Toast{
		ID:        id,
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}
	c.items[id] = toast
	c.order = append(c.order, id)
	c.timers[id] = time.AfterFunc(c.ttl, func() { c.Dismiss(id) })

	metrics.ToastsPushedTotal.WithLabelValues(string(severity)).Inc()
	metrics.ToastsActive.Set(float64(len(c.items)))
	c.log.Debug().Int64("toast_id", id).Str("severity", string(severity)).Msg("toast pushed")

	return toast
}

// Dismiss removes a toast from the active set. Dismissing an unknown or
// already-expired id is a no-op.
func (c *Center) Dismiss(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	metrics.ToastsActive.Set(float64(len(c.items)))
}

// Active returns the currently visible toasts in insertion order.
func (c *Center) Active() []domain.Toast {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]domain.Toast, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Close cancels all pending expiry timers and empties the active set.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = make(map[int64]domain.Toast)
	c.order = nil
	metrics.ToastsActive.Set(0)
}
