package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryAcquirerBlocksDuplicates(t *testing.T) {
	g := NewMemoryAcquirer()
	ctx := context.Background()

	assert.True(t, g.TryAcquire(ctx, "join:alice:1", time.Minute))
	assert.False(t, g.TryAcquire(ctx, "join:alice:1", time.Minute))
	// Distinct keys are independent.
	assert.True(t, g.TryAcquire(ctx, "join:bob:1", time.Minute))
	assert.True(t, g.TryAcquire(ctx, "join:alice:2", time.Minute))
}

func TestMemoryAcquirerExpires(t *testing.T) {
	g := NewMemoryAcquirer()
	ctx := context.Background()

	assert.True(t, g.TryAcquire(ctx, "k", 20*time.Millisecond))
	assert.False(t, g.TryAcquire(ctx, "k", 20*time.Millisecond))
	time.Sleep(50 * time.Millisecond)
	assert.True(t, g.TryAcquire(ctx, "k", 20*time.Millisecond))
}

func TestMemoryAcquirerSingleWinnerUnderContention(t *testing.T) {
	g := NewMemoryAcquirer()
	ctx := context.Background()

	const callers = 32
	var wg sync.WaitGroup
	wins := make(chan struct{}, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if g.TryAcquire(ctx, "contended", time.Minute) {
				wins <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(wins)
	assert.Len(t, wins, 1, "exactly one caller should win the guard")
}

func TestNewFallsBackToMemory(t *testing.T) {
	a := New(nil)
	_, ok := a.(*MemoryAcquirer)
	assert.True(t, ok)
}
