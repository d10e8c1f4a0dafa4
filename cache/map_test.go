package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intKey(k int) string { return strconv.Itoa(k) }

func TestMapGetMissComputesAndInstalls(t *testing.T) {
	m := NewMap[int, string](intKey)
	v, err := m.Get(context.Background(), 1, Fingerprint(10), func(context.Context) (string, Fingerprint, error) {
		return "hello", Fingerprint(10), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.Equal(t, 1, m.Len())
}

func TestMapGetHitSkipsCompute(t *testing.T) {
	m := NewMap[int, string](intKey)
	var calls atomic.Int32
	compute := func(context.Context) (string, Fingerprint, error) {
		calls.Add(1)
		return "v", Fingerprint(1), nil
	}

	_, err := m.Get(context.Background(), 1, Fingerprint(1), compute)
	require.NoError(t, err)
	_, err = m.Get(context.Background(), 1, Fingerprint(1), compute)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
}

func TestMapGetStaleFingerprintRecomputes(t *testing.T) {
	m := NewMap[int, string](intKey)
	_, err := m.Get(context.Background(), 1, Fingerprint(1), func(context.Context) (string, Fingerprint, error) {
		return "old", Fingerprint(1), nil
	})
	require.NoError(t, err)

	v, err := m.Get(context.Background(), 1, Fingerprint(2), func(context.Context) (string, Fingerprint, error) {
		return "new", Fingerprint(2), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestMapGetPropagatesComputeError(t *testing.T) {
	m := NewMap[int, string](intKey)
	wantErr := assert.AnError
	_, err := m.Get(context.Background(), 1, Fingerprint(1), func(context.Context) (string, Fingerprint, error) {
		return "", 0, wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.Equal(t, 0, m.Len(), "a failed compute must not install a cache entry")
}

func TestMapGetDeduplicatesConcurrentMisses(t *testing.T) {
	m := NewMap[int, string](intKey)
	var calls atomic.Int32

	const goroutines = 20
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			_, err := m.Get(context.Background(), 1, Fingerprint(1), func(context.Context) (string, Fingerprint, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "v", Fingerprint(1), nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent callers missing the same key must share one computation")
}

func TestMapInvalidateForcesRecompute(t *testing.T) {
	m := NewMap[int, string](intKey)
	var calls atomic.Int32
	compute := func(context.Context) (string, Fingerprint, error) {
		calls.Add(1)
		return "v", Fingerprint(1), nil
	}

	_, _ = m.Get(context.Background(), 1, Fingerprint(1), compute)
	m.Invalidate(1)
	_, _ = m.Get(context.Background(), 1, Fingerprint(1), compute)

	assert.Equal(t, int32(2), calls.Load())
}

func TestMapInvalidateMatching(t *testing.T) {
	m := NewMap[int, string](intKey)
	for i := 1; i <= 3; i++ {
		_, _ = m.Get(context.Background(), i, Fingerprint(1), func(context.Context) (string, Fingerprint, error) {
			return "v", Fingerprint(1), nil
		})
	}
	m.InvalidateMatching(func(k int) bool { return k != 2 })
	assert.Equal(t, 1, m.Len())
	_, ok := m.Peek(2)
	assert.True(t, ok)
}

func TestMapPeekIgnoresFingerprint(t *testing.T) {
	m := NewMap[int, string](intKey)
	_, _ = m.Get(context.Background(), 1, Fingerprint(1), func(context.Context) (string, Fingerprint, error) {
		return "v", Fingerprint(1), nil
	})
	v, ok := m.Peek(1)
	require.True(t, ok)
	assert.Equal(t, "v", v)
}
