package sched

import (
	"sync"

	"github.com/emirpasic/gods/trees/binaryheap"
)

// byPriority orders the heap so the highest level surfaces first.
func byPriority(a, b interface{}) int {
	return int(b.(Task).Priority) - int(a.(Task).Priority)
}

// PriorityQueue holds pending tasks ordered by PriorityLevel. It is the
// only shared mutable resource in the system: all access is serialized by
// an internal mutex, held for the single operation only and never across a
// handler's execution.
//
// Equal-priority tasks surface in no particular order (heap order, not
// insertion order).
type PriorityQueue struct {
	mu   sync.Mutex
	heap *binaryheap.Heap
}

func NewPriorityQueue() *PriorityQueue {
	return &PriorityQueue{heap: binaryheap.NewWith(byPriority)}
}

// Push inserts a task and re-establishes the priority invariant. It never
// fails.
func (q *PriorityQueue) Push(t Task) {
	q.mu.Lock()
	q.heap.Push(t)
	q.mu.Unlock()
}

// TryPush inserts t unless the queue already holds max or more tasks.
// max <= 0 means no bound. The depth check and the insert happen under one
// lock acquisition, so the bound cannot be overshot by racing producers.
func (q *PriorityQueue) TryPush(t Task, max int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if max > 0 && q.heap.Size() >= max {
		return false
	}
	q.heap.Push(t)
	return true
}

// Pop removes and returns the task with the highest priority among those
// currently held. The second return is false when the queue is empty; that
// is a normal state, not an error.
func (q *PriorityQueue) Pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.heap.Pop()
	if !ok {
		return Task{}, false
	}
	return v.(Task), true
}

// Peek returns the highest-priority task without removing it.
func (q *PriorityQueue) Peek() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	v, ok := q.heap.Peek()
	if !ok {
		return Task{}, false
	}
	return v.(Task), true
}

func (q *PriorityQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.heap.Size()
}

func (q *PriorityQueue) IsEmpty() bool {
	return q.Len() == 0
}
