package sched

import (
	"context"
	"log/slog"
	"time"
)

// Feeder manufactures a bounded stream of tasks at a fixed interval,
// simulating external arrival, and hands them to the mailbox. Priority
// alternates by generation parity: even generations are High, odd are Low.
// The stream is finite and not restartable.
type Feeder struct {
	mailbox  *Mailbox
	count    int
	interval time.Duration
	build    func(gen int) Handler
	logger   *slog.Logger
}

// NewFeeder creates a feeder emitting count tasks, one every interval.
// build supplies the handler payload for a given generation counter.
func NewFeeder(mailbox *Mailbox, count int, interval time.Duration, build func(gen int) Handler, logger *slog.Logger) *Feeder {
	return &Feeder{
		mailbox:  mailbox,
		count:    count,
		interval: interval,
		build:    build,
		logger:   logger.With("component", "feeder"),
	}
}

// Run emits exactly f.count tasks and then closes the mailbox so the
// consumer can terminate. A send failure or context cancellation is fatal
// to this loop only.
func (f *Feeder) Run(ctx context.Context) error {
	defer f.mailbox.Close()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for gen := 0; gen < f.count; gen++ {
		level := Low
		if gen%2 == 0 {
			level = High
		}
		t := NewTask(f.build(gen), level)

		if err := f.mailbox.Send(t); err != nil {
			f.logger.Error("send failed", "task_id", t.ID, "error", err)
			return err
		}
		f.logger.Info("task emitted", "task_id", t.ID, "priority", t.Priority, "generation", gen)

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
