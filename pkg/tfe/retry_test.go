package tfe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall(t *testing.T) {
	t.Run("returns the first success", func(t *testing.T) {
		calls := 0
		got, err := Call(context.Background(), RetryPolicy{Retries: 3, Sleep: time.Millisecond}, func() (string, error) {
			calls++
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", got)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries up to the attempt budget", func(t *testing.T) {
		calls := 0
		_, err := Call(context.Background(), RetryPolicy{Retries: 3, Sleep: time.Millisecond}, func() (string, error) {
			calls++
			return "", errors.New("down")
		})
		require.Error(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("the last error is returned unchanged", func(t *testing.T) {
		calls := 0
		errs := []error{
			errors.New("first"),
			&Error{Op: "GET /api/v2/organizations", Status: 500, Message: "last"},
		}
		_, err := Call(context.Background(), RetryPolicy{Retries: 2, Sleep: 0}, func() (string, error) {
			defer func() { calls++ }()
			return "", errs[calls]
		})
		assert.Same(t, errs[1], err)
	})

	t.Run("sleeps a constant interval between attempts", func(t *testing.T) {
		sleep := 20 * time.Millisecond
		start := time.Now()
		_, err := Call(context.Background(), RetryPolicy{Retries: 3, Sleep: sleep}, func() (string, error) {
			return "", errors.New("down")
		})
		require.Error(t, err)
		// Three attempts mean two pauses.
		assert.GreaterOrEqual(t, time.Since(start), 2*sleep)
	})

	t.Run("a success mid-budget stops retrying", func(t *testing.T) {
		calls := 0
		got, err := Call(context.Background(), RetryPolicy{Retries: 5, Sleep: time.Millisecond}, func() (int, error) {
			calls++
			if calls < 3 {
				return 0, errors.New("down")
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, calls)
	})

	t.Run("cancellation stops the loop between attempts", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := Call(ctx, RetryPolicy{Retries: 10, Sleep: 50 * time.Millisecond}, func() (string, error) {
			calls++
			cancel()
			return "", errors.New("down")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero-value policy makes a single attempt", func(t *testing.T) {
		calls := 0
		_, err := Call(context.Background(), RetryPolicy{}, func() (string, error) {
			calls++
			return "", errors.New("down")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 3, p.Retries)
	assert.Equal(t, 5*time.Second, p.Sleep)
}
