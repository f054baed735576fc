package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreate(t *testing.T) {
	t.Parallel()

	caches := []struct {
		name  string
		cache func() Cache[string]
	}{
		{
			name:  "BasicCache",
			cache: func() Cache[string] { return NewBasicCache[string]() },
		},
		{
			name:  "TTLCache",
			cache: func() Cache[string] { return NewTTLCache[string](time.Minute) },
		},
	}

	for _, c := range caches {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			ctx := context.Background()

			t.Run("creates on miss and hits afterwards", func(t *testing.T) {
				t.Parallel()
				cache := c.cache()

				data, created, err := GetOrCreate(ctx, cache, "key", func() (string, error) {
					return "data1", nil
				})
				require.NoError(t, err)
				require.True(t, created)
				require.Equal(t, "data1", data)

				data, created, err = GetOrCreate(ctx, cache, "key", func() (string, error) {
					t.Fatal("create called on a cache hit")
					return "", nil
				})
				require.NoError(t, err)
				require.False(t, created)
				require.Equal(t, "data1", data)
			})

			t.Run("keys are independent", func(t *testing.T) {
				t.Parallel()
				cache := c.cache()

				for i := range 3 {
					data, created, err := GetOrCreate(ctx, cache, fmt.Sprintf("key%d", i), func() (string, error) {
						return fmt.Sprintf("data%d", i), nil
					})
					require.NoError(t, err)
					require.True(t, created)
					require.Equal(t, fmt.Sprintf("data%d", i), data)
				}
			})

			t.Run("cleans up on error", func(t *testing.T) {
				t.Parallel()
				cache := c.cache()
				createErr := errors.New("upstream down")

				_, _, err := GetOrCreate(ctx, cache, "key", func() (string, error) {
					return "", createErr
				})
				require.ErrorIs(t, err, createErr)

				data, created, err := GetOrCreate(ctx, cache, "key", func() (string, error) {
					return "data2", nil
				})
				require.NoError(t, err)
				require.True(t, created)
				require.Equal(t, "data2", data)
			})

			t.Run("cancelled context", func(t *testing.T) {
				t.Parallel()
				cache := c.cache()
				cancelled, cancel := context.WithCancel(ctx)
				cancel()

				_, _, err := GetOrCreate(cancelled, cache, "key", func() (string, error) {
					t.Fatal("create called with a cancelled context")
					return "", nil
				})
				require.ErrorIs(t, err, context.Canceled)
			})
		})
	}
}

func TestGetOrCreateDeduplicates(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewTTLCache[string](time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]string, 10)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data, _, err := GetOrCreate(ctx, cache, "key", func() (string, error) {
				calls.Add(1)
				<-release
				return "data1", nil
			})
			assert.NoError(t, err)
			results[i] = data
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, data := range results {
		require.Equal(t, "data1", data)
	}
}
