package job

import (
	"context"
	"time"
)

// Combine is the toy unit of work: it sleeps for Delay to simulate effort,
// then returns the sum of its two operands.
type Combine struct {
	A, B  int
	Delay time.Duration
}

func NewCombine(a, b int, delay time.Duration) Combine {
	return Combine{A: a, B: b, Delay: delay}
}

// Execute waits out the delay (or the context, whichever ends first) and
// returns A+B.
func (c Combine) Execute(ctx context.Context) (int, error) {
	if c.Delay > 0 {
		timer := time.NewTimer(c.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-timer.C:
		}
	}
	return c.A + c.B, nil
}
