package tfe

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// DefaultRetries is the total number of attempts per call.
	DefaultRetries = 3

	// DefaultSleep is the fixed pause between attempts.
	DefaultSleep = 5 * time.Second
)

// RetryPolicy bounds the retry loop around a single remote call. Every
// failure is retried after a constant sleep; there is no exponential
// backoff and no cross-call circuit state. The zero value is usable via
// defaults applied in attempts and sleep.
type RetryPolicy struct {
	// Retries is the total number of attempts, including the first.
	Retries int

	// Sleep is the fixed delay between attempts.
	Sleep time.Duration
}

// DefaultRetryPolicy returns the standard 3 attempts / 5 second pause.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Retries: DefaultRetries, Sleep: DefaultSleep}
}

func (p RetryPolicy) attempts() uint64 {
	if p.Retries < 1 {
		return 1
	}
	return uint64(p.Retries)
}

func (p RetryPolicy) sleep() time.Duration {
	if p.Sleep < 0 {
		return 0
	}
	return p.Sleep
}

// Call invokes op until it succeeds or the retry budget is spent, sleeping
// the policy's fixed interval between attempts. The error returned after
// exhaustion is the last error from op, unchanged, so status codes and
// response text survive for the caller to inspect. Cancelling ctx stops the
// loop between attempts.
func Call[T any](ctx context.Context, policy RetryPolicy, op func() (T, error)) (T, error) {
	var out T
	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(policy.sleep()), policy.attempts()-1),
		ctx,
	)
	err := backoff.Retry(func() error {
		v, err := op()
		if err != nil {
			return err
		}
		out = v
		return nil
	}, b)
	return out, err
}
