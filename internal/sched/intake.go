package sched

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy bounds how often Intake re-runs a failing handler before
// giving up. Attempts of 1 means a single try and no retry, which matches
// the reference behavior.
type RetryPolicy struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		Attempts: 1,
		Initial:  200 * time.Millisecond,
		Max:      5 * time.Second,
	}
}

// IntakeOptions carry the optional knobs; zero values fall back to
// defaults (no retry, unbounded queue, no metrics).
type IntakeOptions struct {
	Retry         RetryPolicy
	MaxQueueDepth int
	Metrics       *Metrics
}

// Intake consumes tasks from the mailbox one at a time, executing each
// synchronously before taking the next — intentional backpressure. Every
// completed task derives two successors, Medium and Low, built over
// (result, result+1), which are pushed into the shared priority queue.
// This is the feedback loop: one consumed task manufactures two new ones,
// so the queue grows without bound unless MaxQueueDepth is set or the
// dispatcher drains faster than the feeder arrives.
type Intake struct {
	queue    *PriorityQueue
	mailbox  *Mailbox
	derive   func(result int) Handler
	retry    RetryPolicy
	maxDepth int
	logger   *slog.Logger
	metrics  *Metrics
}

func NewIntake(queue *PriorityQueue, mailbox *Mailbox, derive func(result int) Handler, logger *slog.Logger, opts IntakeOptions) *Intake {
	if opts.Retry.Attempts < 1 {
		opts.Retry = DefaultRetryPolicy()
	}
	return &Intake{
		queue:    queue,
		mailbox:  mailbox,
		derive:   derive,
		retry:    opts.Retry,
		maxDepth: opts.MaxQueueDepth,
		logger:   logger.With("component", "intake"),
		metrics:  opts.Metrics,
	}
}

// Run receives until the mailbox channel is closed, which is the normal
// terminal condition; the loop then exits cleanly with nil.
func (in *Intake) Run(ctx context.Context) error {
	for {
		select {
		case task, ok := <-in.mailbox.Receive():
			if !ok {
				in.logger.Info("mailbox drained, intake done")
				return nil
			}
			in.process(ctx, task)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (in *Intake) process(ctx context.Context, t Task) {
	start := time.Now()
	result, err := in.execute(ctx, t)
	if err != nil {
		// The task's result is lost; no successors are derived from a
		// failed execution.
		in.logger.Error("task failed", "task_id", t.ID, "error", err)
		in.metrics.taskFailed("intake")
		return
	}

	in.logger.Info("task completed", "task_id", t.ID, "result", result)
	in.metrics.taskCompleted("intake", time.Since(start))
	in.pushDerived(result)
}

// execute runs the handler with panic isolation, retrying per the policy
// with exponential backoff between attempts.
func (in *Intake) execute(ctx context.Context, t Task) (int, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = in.retry.Initial
	bo.MaxInterval = in.retry.Max

	for attempt := 1; ; attempt++ {
		result, err := runHandler(ctx, t)
		if err == nil {
			return result, nil
		}
		if attempt >= in.retry.Attempts {
			return 0, err
		}

		delay := bo.NextBackOff()
		in.logger.Warn("attempt failed, backing off",
			"task_id", t.ID,
			"attempt", attempt,
			"sleep", delay,
			"error", err,
		)
		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return 0, ctx.Err()
		}
	}
}

func (in *Intake) pushDerived(result int) {
	for _, level := range []PriorityLevel{Medium, Low} {
		t := NewTask(in.derive(result), level)
		if !in.queue.TryPush(t, in.maxDepth) {
			in.logger.Warn("queue at depth bound, dropping derived task",
				"task_id", t.ID, "priority", level, "max_depth", in.maxDepth)
			in.metrics.taskDropped()
			continue
		}
		in.logger.Info("derived task queued", "task_id", t.ID, "priority", level, "result", result)
		in.metrics.taskSubmitted(level)
		in.metrics.setQueueDepth(in.queue.Len())
	}
}
