package sched

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Handler is the capability a task carries: a single synchronous unit of
// work producing an integer result. Implementations must be safe to invoke
// from any goroutine; they may block to simulate work duration but should
// honor ctx cancellation while doing so.
type Handler interface {
	Execute(ctx context.Context) (int, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context) (int, error)

func (f HandlerFunc) Execute(ctx context.Context) (int, error) { return f(ctx) }

// Task represents one schedulable unit of work. It is immutable once
// constructed and consumed exactly once: moved into the queue, then out to
// a single executor.
type Task struct {
	ID       uuid.UUID
	Handler  Handler
	Priority PriorityLevel
}

// NewTask builds a task with a fresh random ID.
func NewTask(h Handler, priority PriorityLevel) Task {
	return Task{
		ID:       uuid.New(),
		Handler:  h,
		Priority: priority,
	}
}

// runHandler executes a task's handler, converting a panic into an error so
// a single bad handler cannot take the calling goroutine down with it. The
// task is already off the queue by the time this runs, so a failure can
// never corrupt shared state.
func runHandler(ctx context.Context, t Task) (result int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return t.Handler.Execute(ctx)
}
