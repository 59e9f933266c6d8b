package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy(capacity, refill int64, period time.Duration) Policy {
	return Policy{Capacity: capacity, RefillQuantity: refill, RefillPeriod: period}
}

func TestBucket_TryConsume(t *testing.T) {
	t.Run("Success_DrainCapacityThenReject", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(5, 5, time.Minute), func() time.Time { return current })

		for i := int64(4); i >= 0; i-- {
			result := bucket.TryConsume(1)
			require.True(t, result.Admitted)
			assert.Equal(t, i, result.Remaining)
		}

		result := bucket.TryConsume(1)
		require.False(t, result.Admitted)
		assert.Equal(t, time.Minute, result.RetryAfter)
		assert.Equal(t, int64(60), result.RetryAfterSeconds())
	})

	t.Run("Success_RejectedMidPeriodReportsRemainingWait", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(5, 5, time.Minute), func() time.Time { return current })

		for i := 0; i < 5; i++ {
			require.True(t, bucket.TryConsume(1).Admitted)
		}

		current = current.Add(30 * time.Second)

		result := bucket.TryConsume(1)
		require.False(t, result.Admitted)
		assert.Equal(t, 30*time.Second, result.RetryAfter)
		assert.Equal(t, int64(30), result.RetryAfterSeconds())
	})

	t.Run("Success_RefillAfterFullPeriod", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(5, 5, time.Minute), func() time.Time { return current })

		for i := 0; i < 5; i++ {
			require.True(t, bucket.TryConsume(1).Admitted)
		}

		current = current.Add(59 * time.Second)
		require.False(t, bucket.TryConsume(1).Admitted)

		current = current.Add(time.Second)

		result := bucket.TryConsume(1)
		require.True(t, result.Admitted)
		assert.Equal(t, int64(4), result.Remaining)
	})

	t.Run("Success_NoRefillWithinPeriod", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(5, 5, time.Minute), func() time.Time { return current })

		require.True(t, bucket.TryConsume(3).Admitted)

		current = current.Add(45 * time.Second)
		assert.Equal(t, int64(2), bucket.Tokens())
	})

	t.Run("Success_RefillCappedAtCapacity", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(5, 5, time.Minute), func() time.Time { return current })

		require.True(t, bucket.TryConsume(1).Admitted)

		current = current.Add(10 * time.Minute)
		assert.Equal(t, int64(5), bucket.Tokens())
	})

	t.Run("Success_PartialRefillAccumulatesAcrossPeriods", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(10, 2, time.Minute), func() time.Time { return current })

		require.True(t, bucket.TryConsume(10).Admitted)

		current = current.Add(3 * time.Minute)
		assert.Equal(t, int64(6), bucket.Tokens())
	})

	t.Run("Success_RetryAfterCoversMultiplePeriods", func(t *testing.T) {
		current := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
		bucket := newBucket(testPolicy(10, 2, time.Minute), func() time.Time { return current })

		require.True(t, bucket.TryConsume(10).Admitted)

		// Five tokens need three refill events of two tokens each.
		result := bucket.TryConsume(5)
		require.False(t, result.Admitted)
		assert.Equal(t, 3*time.Minute, result.RetryAfter)
	})
}

func TestResult_RetryAfterSeconds(t *testing.T) {
	t.Run("Success_RoundsUpSubSecondWaits", func(t *testing.T) {
		result := Result{RetryAfter: 59*time.Second + 500*time.Millisecond}
		assert.Equal(t, int64(60), result.RetryAfterSeconds())
	})

	t.Run("Success_ExactSecondsUnchanged", func(t *testing.T) {
		result := Result{RetryAfter: 12 * time.Second}
		assert.Equal(t, int64(12), result.RetryAfterSeconds())
	})
}

func TestBucket_ConcurrentConsume(t *testing.T) {
	t.Run("Success_ExactAdmissionUnderContention", func(t *testing.T) {
		bucket := NewBucket(testPolicy(100, 100, time.Hour))

		var wg sync.WaitGroup
		admitted := make(chan bool, 150)

		for i := 0; i < 150; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				admitted <- bucket.TryConsume(1).Admitted
			}()
		}

		wg.Wait()
		close(admitted)

		count := 0
		for ok := range admitted {
			if ok {
				count++
			}
		}
		assert.Equal(t, 100, count)
	})
}
