package sched

import (
	"errors"
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// ErrMailboxClosed is returned by Send after Close has been called.
var ErrMailboxClosed = errors.New("sched: mailbox is closed")

// Mailbox is the unbounded FIFO handoff between the Feeder and the Intake
// loop. Send never blocks on capacity: tasks land in a linked-list buffer
// and a pump goroutine hands them to the receive channel in send order.
// No priority reordering happens here; priority only applies once a task
// reaches the PriorityQueue.
type Mailbox struct {
	mu     sync.Mutex
	buf    *linkedlistqueue.Queue
	closed bool

	wake chan struct{} // 1-slot, nudges the pump after Send/Close
	out  chan Task
}

func NewMailbox() *Mailbox {
	m := &Mailbox{
		buf:  linkedlistqueue.New(),
		wake: make(chan struct{}, 1),
		out:  make(chan Task),
	}
	go m.pump()
	return m
}

// Send enqueues t for delivery. It never blocks waiting for the consumer.
func (m *Mailbox) Send(t Task) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrMailboxClosed
	}
	m.buf.Enqueue(t)
	m.mu.Unlock()
	m.nudge()
	return nil
}

// Close marks the mailbox closed. Tasks already buffered are still
// delivered; the receive channel closes once they drain. Idempotent.
func (m *Mailbox) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.mu.Unlock()
	m.nudge()
}

// Receive returns the channel the consumer loop reads from. The channel is
// closed after Close once every buffered task has been handed over, which
// is the consumer's terminal condition.
func (m *Mailbox) Receive() <-chan Task { return m.out }

// Len reports how many tasks are buffered and not yet handed to the
// consumer.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buf.Size()
}

func (m *Mailbox) nudge() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// pump moves tasks from the buffer to the out channel. When the buffer is
// empty it parks on wake; the buffered nudge guarantees a Send between the
// empty check and the park is never missed.
func (m *Mailbox) pump() {
	for {
		m.mu.Lock()
		v, ok := m.buf.Dequeue()
		closed := m.closed
		m.mu.Unlock()

		if ok {
			m.out <- v.(Task)
			continue
		}
		if closed {
			close(m.out)
			return
		}
		<-m.wake
	}
}
