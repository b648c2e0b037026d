package kvstore

import (
	"context"
	"sync"
)

// FaultyBackend wraps another backend and injects read/write failures.
// Tests use it to verify the store's degradation behavior: read failures
// fall back to seeds, write failures leave the session on the in-memory
// value.
type FaultyBackend struct {
	mu       sync.Mutex
	inner    Backend
	readErr  error
	writeErr error
}

func NewFaultyBackend(inner Backend) *FaultyBackend {
	return &FaultyBackend{inner: inner}
}

// FailReads makes every subsequent Read return err (nil restores normal
// operation).
func (b *FaultyBackend) FailReads(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.readErr = err
}

// FailWrites makes every subsequent Write return err.
func (b *FaultyBackend) FailWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

func (b *FaultyBackend) Read(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	err := b.readErr
	b.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return b.inner.Read(ctx, key)
}

func (b *FaultyBackend) Write(ctx context.Context, key string, data []byte) error {
	b.mu.Lock()
	err := b.writeErr
	b.mu.Unlock()
	if err != nil {
		return err
	}
	return b.inner.Write(ctx, key, data)
}
