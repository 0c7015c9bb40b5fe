package ws

import (
	"context"
	"math/rand/v2"
	"time"
)

// Jitter scales retry delays. *rand.Rand from math/rand/v2 satisfies it.
type Jitter interface {
	Float64() float64
}

type globalJitter struct{}

func (globalJitter) Float64() float64 { return rand.Float64() }

// Delay is the wait before the given retry (1 = first retry). Growth stops at
// MaxDelay; with Jitter set the result lands in [d/2, 3d/2).
func (b BackoffConfig) Delay(retry int, j Jitter) time.Duration {
	if b.InitialDelay <= 0 {
		return 0
	}
	mult := b.Multiplier
	if mult < 1 {
		mult = 1
	}
	d := float64(b.InitialDelay)
	for i := 1; i < retry; i++ {
		d *= mult
		if b.MaxDelay > 0 && d >= float64(b.MaxDelay) {
			d = float64(b.MaxDelay)
			break
		}
	}
	if b.MaxDelay > 0 && d > float64(b.MaxDelay) {
		d = float64(b.MaxDelay)
	}
	if b.Jitter && j != nil {
		d = d/2 + j.Float64()*d
	}
	return time.Duration(d)
}

// wait sleeps for the delay of retry, returning early with ctx's error.
func (b BackoffConfig) wait(ctx context.Context, retry int, j Jitter) error {
	delay := b.Delay(retry, j)
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
