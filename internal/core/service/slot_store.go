package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/core/ports"
)

// SlotStore manages named JSON slots on top of a raw SlotStorage backend.
//
// It keeps an in-memory mirror of every slot it has touched. The mirror is
// updated even when the durable write fails, so in-memory and durable state
// can diverge after a failed write; Degraded reports when that has happened.
// Refresh drops the mirror so the next read of each slot hits durable
// storage again (freshness-on-navigation, not a reactive subscription).
type SlotStore struct {
	storage ports.SlotStorage
	log     zerolog.Logger

	mu       sync.Mutex
	mirror   map[string]string
	degraded bool
}

func NewSlotStore(storage ports.SlotStorage, log zerolog.Logger) *SlotStore {
	return &SlotStore{
		storage: storage,
		log:     log.With().Str("component", "slot_store").Logger(),
		mirror:  make(map[string]string),
	}
}

// GetSlot reads a typed value from a named slot.
//
// An absent slot is seeded: the default is serialized, written back once,
// and returned. A slot that exists but fails to deserialize is left
// untouched in durable storage; the default is returned and the corruption
// is logged, never surfaced to the caller.
func GetSlot[T any](ctx context.Context, s *SlotStore, key string, def T) T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, ok := s.mirror[key]; ok {
		var v T
		err := json.Unmarshal([]byte(raw), &v)
		if err == nil {
			return v
		}
		s.log.Error().Err(err).Str("key", key).Msg("mirrored slot corrupt, using default")
		return def
	}

	raw, exists, err := s.storage.Read(ctx, key)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("slot read failed")
		return def
	}

	if !exists {
		s.seedLocked(ctx, key, def)
		return def
	}

	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// Corrupt slot: recover with the default but leave the stored
		// value in place for inspection.
		s.log.Error().Err(err).Str("key", key).Msg("slot corrupt, using default")
		if b, merr := json.Marshal(def); merr == nil {
			s.mirror[key] = string(b)
		}
		return def
	}

	s.mirror[key] = raw
	return v
}

// SetSlot serializes and writes a typed value to a named slot. The mirror is
// updated whether or not the durable write succeeds; write failures are
// logged and flip the degraded flag. Only serialization failures are
// returned to the caller.
func SetSlot[T any](ctx context.Context, s *SlotStore, key string, value T) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("serialize slot %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.mirror[key] = string(b)
	if err := s.storage.Write(ctx, key, string(b)); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("slot write failed")
		s.degraded = true
	}
	return nil
}

// Refresh discards the in-memory mirror so subsequent reads consult durable
// storage again.
func (s *SlotStore) Refresh() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mirror = make(map[string]string)
}

// Degraded reports whether any durable write has failed since creation,
// meaning the mirror may disagree with durable storage.
func (s *SlotStore) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *SlotStore) seedLocked(ctx context.Context, key string, def any) {
	b, err := json.Marshal(def)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("slot default not serializable")
		return
	}
	s.mirror[key] = string(b)
	if err := s.storage.Write(ctx, key, string(b)); err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("slot seed write failed")
		s.degraded = true
	}
}
