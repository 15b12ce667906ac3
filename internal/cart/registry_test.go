package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/Hasan-Creations/MobiSwap/pkg/errors"
	"github.com/Hasan-Creations/MobiSwap/pkg/logger"
)

func TestRegistryReturnsSameStorePerSession(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(NewMemorySlots(), logger.Nop())

	a, err := reg.Get(ctx, "alpha")
	require.NoError(t, err)
	again, err := reg.Get(ctx, "alpha")
	require.NoError(t, err)
	other, err := reg.Get(ctx, "beta")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, other)
	assert.Equal(t, 2, reg.Len())
}

func TestRegistryRejectsBlankSession(t *testing.T) {
	reg := NewRegistry(NewMemorySlots(), logger.Nop())
	_, err := reg.Get(context.Background(), "  ")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestRegistrySweepEvictsIdleAndRehydrates(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 12, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	reg := NewRegistry(NewMemorySlots(), logger.Nop(), WithIdleTTL(time.Minute), withClock(clock))

	store, err := reg.Get(ctx, "alpha")
	require.NoError(t, err)
	store.Add(ctx, galaxy)

	now = now.Add(30 * time.Second)
	assert.Equal(t, 0, reg.Sweep())

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 0, reg.Len())

	revived, err := reg.Get(ctx, "alpha")
	require.NoError(t, err)
	assert.NotSame(t, store, revived)
	assert.Equal(t, 1, revived.ItemCount())
}

func TestRegistryAttachesObservers(t *testing.T) {
	ctx := context.Background()
	var got []Event
	obs := ObserverFunc(func(_ context.Context, evt Event) { got = append(got, evt) })
	reg := NewRegistry(NewMemorySlots(), logger.Nop(), WithRegistryObservers(obs))

	store, err := reg.Get(ctx, "alpha")
	require.NoError(t, err)
	store.Add(ctx, pixelPro)
	store.UpdateQuantity(ctx, "1", -1)

	require.Len(t, got, 1)
	assert.Equal(t, "alpha", got[0].SessionID)
}

func TestRegistryRunStopsOnCancel(t *testing.T) {
	reg := NewRegistry(NewMemorySlots(), logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		reg.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweep loop did not stop after cancel")
	}
}
