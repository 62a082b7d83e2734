package alternator

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBudget(t *testing.T) {
	assert.PanicsWithError(t, `alternator: negative budget: -1`, func() { NewBudget(-1) })

	b := NewBudget(3)
	assert.Equal(t, int64(3), b.Remaining())
	assert.False(t, b.Done())
	for i := int64(2); i >= 0; i-- {
		assert.True(t, b.Take())
		assert.Equal(t, i, b.Remaining())
	}
	assert.False(t, b.Take())
	assert.Equal(t, int64(0), b.Remaining())
	assert.False(t, b.Done())
	assert.True(t, b.Finish())
	assert.True(t, b.Done())
	assert.False(t, b.Finish())
	assert.True(t, b.Done())

	b.remaining = -1
	assert.PanicsWithError(t, `alternator: budget underflow: -1`, func() { b.Take() })
}

func TestBudget_zero(t *testing.T) {
	b := NewBudget(0)
	assert.False(t, b.Take())
	assert.Equal(t, int64(0), b.Remaining())
}

func TestAtomicBudget(t *testing.T) {
	assert.PanicsWithError(t, `alternator: negative budget: -5`, func() { NewAtomicBudget(-5) })

	b := NewAtomicBudget(2)
	assert.True(t, b.Take())
	assert.True(t, b.Take())
	assert.False(t, b.Take())
	assert.Equal(t, int64(0), b.Remaining())
	assert.False(t, b.Done())
	assert.True(t, b.Finish())
	assert.False(t, b.Finish())
	assert.True(t, b.Done())

	b.remaining.Store(-1)
	assert.PanicsWithError(t, `alternator: budget underflow: -1`, func() { b.Take() })
}

func TestAtomicBudget_concurrent(t *testing.T) {
	const (
		budget  = 10_000
		workers = 8
	)
	b := NewAtomicBudget(budget)
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		taken    int
		finished int
	)
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			var n int
			for b.Take() {
				n++
			}
			f := b.Finish()
			mu.Lock()
			defer mu.Unlock()
			taken += n
			if f {
				finished++
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, budget, taken)
	assert.Equal(t, 1, finished)
	assert.Equal(t, int64(0), b.Remaining())
	assert.True(t, b.Done())
}
