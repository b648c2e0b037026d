package kvstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func seeds() map[string]any {
	return map[string]any{
		"records": []record{{Name: "a", Value: 1}},
		"config":  map[string]string{"theme": "dark"},
	}
}

func TestOpenSeedsMissingCollections(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()

	store, err := Open(ctx, backend, seeds())
	require.NoError(t, err)

	var records []record
	require.NoError(t, store.Get(ctx, "records", &records))
	assert.Equal(t, []record{{Name: "a", Value: 1}}, records)

	// The seed must have been written through to the backend.
	data, err := backend.Read(ctx, "records")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"a","value":1}]`, string(data))
}

func TestOpenPrefersPersistedValue(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Write(ctx, "records", []byte(`[{"name":"persisted","value":7}]`)))

	store, err := Open(ctx, backend, seeds())
	require.NoError(t, err)

	var records []record
	require.NoError(t, store.Get(ctx, "records", &records))
	require.Len(t, records, 1)
	assert.Equal(t, "persisted", records[0].Name)
}

func TestOpenFallsBackToSeedOnReadError(t *testing.T) {
	ctx := context.Background()
	backend := NewFaultyBackend(NewMemoryBackend())
	backend.FailReads(errors.New("disk on fire"))

	store, err := Open(ctx, backend, seeds())
	require.NoError(t, err)

	var records []record
	require.NoError(t, store.Get(ctx, "records", &records))
	assert.Equal(t, "a", records[0].Name)
}

func TestOpenFallsBackToSeedOnCorruptValue(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	require.NoError(t, backend.Write(ctx, "records", []byte(`{not json`)))

	store, err := Open(ctx, backend, seeds())
	require.NoError(t, err)

	var records []record
	require.NoError(t, store.Get(ctx, "records", &records))
	assert.Equal(t, "a", records[0].Name)
}

func TestGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), seeds())
	require.NoError(t, err)

	var first []record
	require.NoError(t, store.Get(ctx, "records", &first))
	first[0].Value = 999

	var second []record
	require.NoError(t, store.Get(ctx, "records", &second))
	assert.Equal(t, float64(1), second[0].Value, "mutating a returned value must not touch the store")
}

func TestGetUnknownKey(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), seeds())
	require.NoError(t, err)

	var dest []record
	err = store.Get(ctx, "nope", &dest)
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSetWritesThrough(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	store, err := Open(ctx, backend, seeds())
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, "records", []record{{Name: "b", Value: 2}}))

	data, err := backend.Read(ctx, "records")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"b","value":2}]`, string(data))
}

func TestSetKeepsMemoryValueOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	backend := NewFaultyBackend(NewMemoryBackend())
	store, err := Open(ctx, backend, seeds())
	require.NoError(t, err)

	backend.FailWrites(errors.New("quota exceeded"))
	err = store.Set(ctx, "records", []record{{Name: "volatile", Value: 3}})
	assert.Error(t, err)

	// The session continues with the new value despite the failed persist.
	var records []record
	require.NoError(t, store.Get(ctx, "records", &records))
	assert.Equal(t, "volatile", records[0].Name)
}

func TestUpdateCommitsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), seeds())
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(ctx, func(tx *Tx) error {
		if err := tx.Set("records", []record{{Name: "half-done"}}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var records []record
	require.NoError(t, store.Get(ctx, "records", &records))
	assert.Equal(t, "a", records[0].Name, "a failed update must not leak staged writes")

	err = store.Update(ctx, func(tx *Tx) error {
		var recs []record
		if err := tx.Get("records", &recs); err != nil {
			return err
		}
		recs = append(recs, record{Name: "b", Value: 2})
		if err := tx.Set("records", recs); err != nil {
			return err
		}
		return tx.Set("config", map[string]string{"theme": "light"})
	})
	require.NoError(t, err)

	require.NoError(t, store.Get(ctx, "records", &records))
	assert.Len(t, records, 2)
	var config map[string]string
	require.NoError(t, store.Get(ctx, "config", &config))
	assert.Equal(t, "light", config["theme"])
}

func TestUpdateSeesOwnStagedWrites(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, NewMemoryBackend(), seeds())
	require.NoError(t, err)

	err = store.Update(ctx, func(tx *Tx) error {
		require.NoError(t, tx.Set("records", []record{{Name: "staged"}}))
		var recs []record
		require.NoError(t, tx.Get("records", &recs))
		assert.Equal(t, "staged", recs[0].Name)
		return nil
	})
	require.NoError(t, err)
}

func TestFilesystemBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend, err := NewFilesystemBackend(t.TempDir())
	require.NoError(t, err)

	_, err = backend.Read(ctx, "records")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, backend.Write(ctx, "records", []byte(`[1,2,3]`)))
	data, err := backend.Read(ctx, "records")
	require.NoError(t, err)
	assert.Equal(t, `[1,2,3]`, string(data))

	// Reopening over the same directory sees the persisted value.
	store, err := Open(ctx, backend, map[string]any{"records": []int{}})
	require.NoError(t, err)
	var nums []int
	require.NoError(t, store.Get(ctx, "records", &nums))
	assert.Equal(t, []int{1, 2, 3}, nums)
}
