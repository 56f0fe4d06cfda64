package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		mc := NewMemoryCache[string]()
		defer mc.Stop()

		require.NoError(t, mc.Set(ctx, "k", "v", 0))
		got, err := mc.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "v", got)
	})

	t.Run("Get missing key", func(t *testing.T) {
		mc := NewMemoryCache[string]()
		defer mc.Stop()

		_, err := mc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("TTL expiry", func(t *testing.T) {
		mc := NewMemoryCacheWithOptions[string](4, time.Hour)
		defer mc.Stop()

		require.NoError(t, mc.Set(ctx, "k", "v", 10*time.Millisecond))
		time.Sleep(20 * time.Millisecond)

		_, err := mc.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Delete", func(t *testing.T) {
		mc := NewMemoryCache[int]()
		defer mc.Stop()

		require.NoError(t, mc.Set(ctx, "n", 42, 0))
		require.NoError(t, mc.Delete(ctx, "n"))

		_, err := mc.Get(ctx, "n")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Janitor removes expired items", func(t *testing.T) {
		mc := NewMemoryCacheWithOptions[string](4, 5*time.Millisecond)
		defer mc.Stop()

		require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
		time.Sleep(30 * time.Millisecond)

		_, err := mc.Get(ctx, "k")
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
