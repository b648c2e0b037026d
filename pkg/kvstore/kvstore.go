// Package kvstore provides durable storage of named JSON collections with
// seed-on-first-open and copy-on-read/copy-on-write semantics: values are
// serialized into the store and deserialized out of it, so callers can
// never mutate stored state through a returned reference.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrUnknownKey is returned when a key was not part of the seed set the
// store was opened with.
var ErrUnknownKey = errors.New("kvstore: unknown collection")

// Store caches every collection in memory and writes through to a Backend.
// A backend write failure leaves the in-memory value ahead of the persisted
// one for the rest of the session; the error is logged and returned, never
// rolled back.
type Store struct {
	mu      sync.RWMutex
	backend Backend
	cache   map[string]json.RawMessage
	tracer  trace.Tracer
}

// Open loads every seeded collection from the backend. A missing or
// unparseable persisted value falls back to the seed, which is written
// back; a backend read error is logged and treated as absent.
func Open(ctx context.Context, backend Backend, seeds map[string]any) (*Store, error) {
	s := &Store{
		backend: backend,
		cache:   make(map[string]json.RawMessage, len(seeds)),
		tracer:  otel.Tracer("iddirhub/kvstore"),
	}

	ctx, span := s.tracer.Start(ctx, "kvstore.open",
		trace.WithAttributes(attribute.Int("collection.count", len(seeds))),
	)
	defer span.End()

	for key, seed := range seeds {
		data, err := backend.Read(ctx, key)
		if err != nil && !errors.Is(err, ErrNotFound) {
			log.Printf("kvstore: read %s failed, seeding: %v", key, err)
		}
		if err == nil && json.Valid(data) {
			s.cache[key] = data
			continue
		}

		seeded, err := json.Marshal(seed)
		if err != nil {
			return nil, fmt.Errorf("marshal seed for %s: %w", key, err)
		}
		s.cache[key] = seeded
		if err := backend.Write(ctx, key, seeded); err != nil {
			log.Printf("kvstore: persist seed for %s failed: %v", key, err)
		}
	}

	return s, nil
}

// Get unmarshals the collection into dest, which always receives a fresh
// copy of the stored state.
func (s *Store) Get(ctx context.Context, key string, dest any) error {
	_, span := s.tracer.Start(ctx, "kvstore.get",
		trace.WithAttributes(attribute.String("collection", key)),
	)
	defer span.End()

	s.mu.RLock()
	data, ok := s.cache[key]
	s.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

// Set replaces the collection with v in both the cache and the backend.
// The cache keeps the new value even when the backend write fails.
func (s *Store) Set(ctx context.Context, key string, v any) error {
	ctx, span := s.tracer.Start(ctx, "kvstore.set",
		trace.WithAttributes(attribute.String("collection", key)),
	)
	defer span.End()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if err := s.backend.Write(ctx, key, data); err != nil {
		log.Printf("kvstore: persist %s failed, continuing with in-memory value: %v", key, err)
		return err
	}
	return nil
}

// Tx is the view a compound operation works against. Its reads and writes
// stay private to the operation until the Update callback returns.
type Tx struct {
	base   map[string]json.RawMessage
	staged map[string]json.RawMessage
}

// Get unmarshals the collection as seen by this transaction, including its
// own staged writes.
func (tx *Tx) Get(key string, dest any) error {
	data, ok := tx.staged[key]
	if !ok {
		if data, ok = tx.base[key]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownKey, key)
		}
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decode collection %s: %w", key, err)
	}
	return nil
}

// Set stages a replacement value for the collection.
func (tx *Tx) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", key, err)
	}
	tx.staged[key] = data
	return nil
}

// Update runs fn under the store's write lock so no other operation can
// observe an intermediate state of a multi-collection mutation. Staged
// writes are applied to the cache only when fn succeeds, then written
// through to the backend; backend failures are logged and returned but the
// cache keeps the committed values.
func (s *Store) Update(ctx context.Context, fn func(tx *Tx) error) error {
	ctx, span := s.tracer.Start(ctx, "kvstore.update")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{
		base:   s.cache,
		staged: make(map[string]json.RawMessage),
	}
	if err := fn(tx); err != nil {
		return err
	}

	span.SetAttributes(attribute.Int("collections.written", len(tx.staged)))

	var writeErr error
	for key, data := range tx.staged {
		s.cache[key] = data
		if err := s.backend.Write(ctx, key, data); err != nil {
			log.Printf("kvstore: persist %s failed, continuing with in-memory value: %v", key, err)
			writeErr = err
		}
	}
	return writeErr
}
