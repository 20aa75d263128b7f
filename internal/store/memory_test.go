package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaushlendra0607/Agentic-AI-Honey-Pot/internal/domain"
)

func TestMemoryStoreGetOrCreate(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	first, err := s.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "sess-1", first.SessionID)
	assert.Empty(t, first.Messages)
	assert.False(t, first.ScamDetected)

	second, err := s.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.Same(t, first, second, "same session id must resolve to the same session")
}

func TestMemoryStoreSaveLastWriterWins(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	sess, err := s.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)

	replacement := domain.NewSession("sess-1")
	replacement.ScamDetected = true
	require.NoError(t, s.Save(ctx, replacement))

	got, err := s.GetOrCreate(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, got.ScamDetected)
	assert.NotSame(t, sess, got)
}

func TestMemoryStoreEvictIdle(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	stale, err := s.GetOrCreate(ctx, "stale")
	require.NoError(t, err)
	stale.UpdatedAt = time.Now().UTC().Add(-2 * time.Hour)

	_, err = s.GetOrCreate(ctx, "fresh")
	require.NoError(t, err)

	count, err := s.EvictIdle(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := s.GetOrCreate(ctx, "shared")
			if err != nil {
				t.Error(err)
				return
			}
			_ = s.Save(ctx, sess)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, s.Len())
}

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("sess-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	t.Parallel()

	km := NewKeyedMutex()
	unlockA := km.Lock("a")

	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key must not block")
	}
	unlockA()
	km.Forget("a")
}
