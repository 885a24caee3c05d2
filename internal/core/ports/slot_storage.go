package ports

import "context"

// SlotStorage is the raw durable backing for named session slots. It stores
// opaque serialized strings; the seeding and corruption-recovery policy lives
// above it in the slot store.
type SlotStorage interface {
	// Read returns the raw value and whether the slot exists.
	Read(ctx context.Context, key string) (string, bool, error)
	// Write stores the raw value under key.
	Write(ctx context.Context, key, value string) error
}
