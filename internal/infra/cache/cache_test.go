//go:build unit

package cache_test

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/infra/cache"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/clock"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/config"
	"github.com/jsonplaytechnologies/onemarket-proapp-sub000/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*cache.TimedCache, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	ttls := cache.NewTTLTable(config.NewTestConfig().Cache)
	return cache.NewTimedCache(ttls, clk, slog.Default()), clk
}

func TestTimedCache_Staleness(t *testing.T) {
	t.Run("TTL経過直前はfresh、経過直後にstale", func(t *testing.T) {
		c, clk := newCache(t)
		c.Set("bookings:page1", "v1")

		clk.Add(30 * time.Second) // TTLBookings ちょうど
		assert.False(t, c.IsStale("bookings:page1", cache.ResourceBookings))
		v, ok := c.Get("bookings:page1", cache.ResourceBookings)
		require.True(t, ok)
		assert.Equal(t, "v1", v)

		clk.Add(time.Nanosecond)
		assert.True(t, c.IsStale("bookings:page1", cache.ResourceBookings))
		_, ok = c.Get("bookings:page1", cache.ResourceBookings)
		assert.False(t, ok)
	})

	t.Run("staleでもエントリは残る（遅延エビクション）", func(t *testing.T) {
		c, clk := newCache(t)
		c.Set("k", 1)
		clk.Add(time.Hour)

		_, ok := c.Get("k", cache.ResourceBookings)
		assert.False(t, ok)
		assert.Equal(t, 1, c.Len())

		c.Set("k", 2)
		v, ok := c.Get("k", cache.ResourceBookings)
		require.True(t, ok)
		assert.Equal(t, 2, v)
	})

	t.Run("未知のResourceTypeはdefault TTLにフォールバック", func(t *testing.T) {
		c, clk := newCache(t)
		c.Set("k", "v")

		clk.Add(29 * time.Second)
		assert.False(t, c.IsStale("k", cache.ResourceType("mystery")))
		clk.Add(2 * time.Second)
		assert.True(t, c.IsStale("k", cache.ResourceType("mystery")))
	})

	t.Run("存在しないキーはstale扱い", func(t *testing.T) {
		c, _ := newCache(t)
		assert.True(t, c.IsStale("missing", cache.ResourceBookings))
	})
}

func TestTimedCache_Invalidation(t *testing.T) {
	t.Run("Invalidateは単一キーのみ", func(t *testing.T) {
		c, _ := newCache(t)
		c.Set("bookings", "list")
		c.Set("booking:1", "one")

		c.Invalidate("bookings")
		_, ok := c.Get("bookings", cache.ResourceBookings)
		assert.False(t, ok)
		_, ok = c.Get("booking:1", cache.ResourceBooking)
		assert.True(t, ok)
	})

	t.Run("InvalidatePatternは部分一致で削除", func(t *testing.T) {
		c, _ := newCache(t)
		c.Set("booking:1", "a")
		c.Set("booking:2", "b")
		c.Set("profile", "c")

		c.InvalidatePattern("booking:")
		assert.Equal(t, 1, c.Len())
		_, ok := c.Get("profile", cache.ResourceProfile)
		assert.True(t, ok)
	})

	t.Run("Clearで全エントリ削除", func(t *testing.T) {
		c, _ := newCache(t)
		c.Set("a", 1)
		c.Set("b", 2)
		c.Clear()
		assert.Equal(t, 0, c.Len())
	})
}

func TestTimedCache_Fetch(t *testing.T) {
	t.Run("同時フェッチは1回のみ実行され全員同じ値を受け取る", func(t *testing.T) {
		c, _ := newCache(t)

		var calls atomic.Int32
		entered := make(chan struct{})
		release := make(chan struct{})
		fn := func(ctx context.Context) (any, error) {
			calls.Add(1)
			close(entered)
			<-release
			return "payload", nil
		}

		results := make([]any, 10)
		var wg sync.WaitGroup

		wg.Add(1)
		go func() {
			defer wg.Done()
			results[0], _ = c.Fetch(context.Background(), "bookings:page1", cache.ResourceBookings, fn)
		}()
		<-entered

		for i := 1; i < 10; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = c.Fetch(context.Background(), "bookings:page1", cache.ResourceBookings, fn)
			}(i)
		}
		// 後続の呼び出しがsingleflightに合流するまで少し待つ
		time.Sleep(20 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
		for _, r := range results {
			assert.Equal(t, "payload", r)
		}
	})

	t.Run("失敗は全waiterに伝播しキャッシュを汚染しない", func(t *testing.T) {
		c, _ := newCache(t)

		boom := errs.Mark(errs.New("connection refused"), errs.ErrNetwork)
		_, err := c.Fetch(context.Background(), "k", cache.ResourceBookings, func(ctx context.Context) (any, error) {
			return nil, boom
		})
		require.Error(t, err)

		// 失敗後の再フェッチは再実行される
		v, err := c.Fetch(context.Background(), "k", cache.ResourceBookings, func(ctx context.Context) (any, error) {
			return "recovered", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "recovered", v)
	})

	t.Run("freshなキャッシュがあればfnは呼ばれない", func(t *testing.T) {
		c, _ := newCache(t)
		c.Set("k", "cached")

		v, err := c.Fetch(context.Background(), "k", cache.ResourceBookings, func(ctx context.Context) (any, error) {
			t.Fatal("fetch should not run")
			return nil, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "cached", v)
	})
}
