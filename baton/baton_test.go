package baton

import (
	"context"
	"testing"
	"time"

	"github.com/joeycumines/go-alternator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaton_invalidCapacity(t *testing.T) {
	for _, capacity := range [...]int64{0, -1} {
		assert.Panics(t, func() { NewBaton(capacity) })
	}
}

func TestBaton_startsEmpty(t *testing.T) {
	b := NewBaton(3)
	assert.Equal(t, int64(0), b.Available())
	assert.Equal(t, int64(3), b.Capacity())
	assert.False(t, b.TryWait())
}

func TestBaton_overflow(t *testing.T) {
	b := NewBaton(2)
	require.NoError(t, b.Pass())
	require.NoError(t, b.Pass())
	assert.ErrorIs(t, b.Pass(), ErrOverflow)
	assert.Equal(t, int64(2), b.Available())

	assert.True(t, b.TryWait())
	assert.Equal(t, int64(1), b.Available())
	require.NoError(t, b.Pass())
	require.NoError(t, b.Wait(context.Background()))
	require.NoError(t, b.Wait(context.Background()))
	assert.Equal(t, int64(0), b.Available())
	assert.False(t, b.TryWait())
}

func TestBaton_Wait_interrupted(t *testing.T) {
	b := NewBaton(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := b.Wait(ctx)
	assert.ErrorIs(t, err, alternator.ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)

	ctx, cancel = context.WithTimeout(context.Background(), time.Millisecond*30)
	defer cancel()
	err = b.Wait(ctx)
	assert.ErrorIs(t, err, alternator.ErrInterrupted)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// interruption consumes nothing
	require.NoError(t, b.Pass())
	assert.Equal(t, int64(1), b.Available())
	assert.True(t, b.TryWait())
}

func TestBaton_Wait_blocks(t *testing.T) {
	b := NewBaton(1)
	done := make(chan error, 1)
	go func() { done <- b.Wait(context.Background()) }()

	select {
	case <-done:
		t.Fatal(`expected wait to block`)
	case <-time.After(time.Millisecond * 20):
	}

	require.NoError(t, b.Pass())
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second * 5):
		t.Fatal(`expected wait to unblock`)
	}
	assert.Equal(t, int64(0), b.Available())
}
