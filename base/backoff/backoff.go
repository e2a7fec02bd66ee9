package backoff

import (
	"context"
	"math"
	"time"
)

type Strategy interface {
	// Duration returns the wait before retry number n, counted from 0
	Duration(n int, start time.Duration) time.Duration
}

// Backoff spaces out the retries of one operation. It is not safe for concurrent use.
type Backoff struct {
	Next time.Duration

	start    time.Duration
	limit    time.Duration
	count    int
	strategy Strategy
}

func New(strategy Strategy, start, limit time.Duration) *Backoff {
	b := &Backoff{strategy: strategy, start: start, limit: limit}
	b.Reset()
	return b
}

func (b *Backoff) Reset() {
	b.count = 0
	b.Next = b.next()
}

// Count is the number of completed waits
func (b *Backoff) Count() int {
	return b.count
}

// Wait sleeps for Next and grows it, or returns the error of ctx once it is done
func (b *Backoff) Wait(ctx context.Context) error {
	timer := time.NewTimer(b.Next)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}
	b.count++
	b.Next = b.next()
	return nil
}

func (b *Backoff) next() time.Duration {
	d := b.strategy.Duration(b.count, b.start)
	if b.limit > 0 && d > b.limit {
		d = b.limit
	}
	return d
}

type exponential struct{}

func (exponential) Duration(n int, start time.Duration) time.Duration {
	return time.Duration(math.Pow(2, float64(n))) * start
}

func NewExponential(start, limit time.Duration) *Backoff {
	return New(exponential{}, start, limit)
}

type linear struct{}

func (linear) Duration(n int, start time.Duration) time.Duration {
	return time.Duration(n+1) * start
}

func NewLinear(start, limit time.Duration) *Backoff {
	return New(linear{}, start, limit)
}
