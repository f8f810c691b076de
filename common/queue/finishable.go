package queue

import (
	"sync"
)

// Finishable is a blocking FIFO queue shared between a record producer and the
// training runner. The producer calls MarkFinished when no more records are
// coming; consumers blocked in Take are then released.
type Finishable[T any] struct {
	mu       sync.Mutex
	nonEmpty *sync.Cond
	fifo     *Fifo[T]
	finished bool
}

// NewFinishable creates a new Finishable queue with the specified initial capacity.
func NewFinishable[T any](initialSize int) *Finishable[T] {
	q := &Finishable[T]{
		fifo: NewFifo[T](initialSize),
	}
	q.nonEmpty = sync.NewCond(&q.mu)
	return q
}

// Put appends an element to the queue. Put returns false if the queue has
// already been marked finished, in which case the element is discarded.
func (q *Finishable[T]) Put(elem T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.finished {
		return false
	}

	q.fifo.Enqueue(elem)
	q.nonEmpty.Signal()
	return true
}

// Take blocks until an element is available or the queue is marked finished.
// The second return value is false once the queue is finished and drained.
func (q *Finishable[T]) Take() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.fifo.Len() == 0 && !q.finished {
		q.nonEmpty.Wait()
	}

	return q.fifo.Dequeue()
}

// MarkFinished signals downstream consumers that no more data is coming.
// MarkFinished is idempotent.
func (q *Finishable[T]) MarkFinished() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.finished {
		return
	}

	q.finished = true
	q.nonEmpty.Broadcast()
}

// Finished returns true once MarkFinished has been called.
func (q *Finishable[T]) Finished() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.finished
}

// Len returns the number of buffered elements.
func (q *Finishable[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return q.fifo.Len()
}
