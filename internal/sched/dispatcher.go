package sched

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Dispatcher drains the priority queue and executes every popped task in
// its own goroutine. The drain loop is fire-and-forget from the queue's
// point of view: it never waits on a task before popping the next, so
// completion order is unrelated to pop order. Dispatcher completions are
// terminal — results are reported through the log and never re-enter the
// queue; feedback re-entry is the intake loop's job.
type Dispatcher struct {
	queue   *PriorityQueue
	logger  *slog.Logger
	metrics *Metrics
	wg      sync.WaitGroup
}

func NewDispatcher(queue *PriorityQueue, logger *slog.Logger, metrics *Metrics) *Dispatcher {
	return &Dispatcher{
		queue:   queue,
		logger:  logger.With("component", "dispatcher"),
		metrics: metrics,
	}
}

// Drain pops until the queue is empty, spawning one execution per popped
// task, and returns how many it dispatched. The queue lock is only ever
// held inside Pop, never across an execution.
func (d *Dispatcher) Drain(ctx context.Context) int {
	n := 0
	for {
		task, ok := d.queue.Pop()
		if !ok {
			break
		}
		n++
		d.metrics.setQueueDepth(d.queue.Len())
		d.wg.Add(1)
		go d.run(ctx, task)
	}
	return n
}

// Wait blocks until every execution spawned by previous Drain calls has
// finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) run(ctx context.Context, t Task) {
	defer d.wg.Done()

	start := time.Now()
	result, err := runHandler(ctx, t)
	if err != nil {
		// The task was fully removed from the queue before execution, so
		// a failure here is isolated to this one goroutine.
		d.logger.Error("task failed", "task_id", t.ID, "priority", t.Priority, "error", err)
		d.metrics.taskFailed("dispatcher")
		return
	}

	d.logger.Info("task executed", "task_id", t.ID, "priority", t.Priority, "result", result)
	d.metrics.taskCompleted("dispatcher", time.Since(start))
}
