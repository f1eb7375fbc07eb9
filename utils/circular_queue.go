package utils

import "iter"

// CircularQueue is a bounded FIFO that overwrites its oldest element once
// full. The zero value is not usable; create one with NewCircularQueue.
type CircularQueue[T any] struct {
	items []T
	head  int
	tail  int
	count int
}

func NewCircularQueue[T any](capacity int) *CircularQueue[T] {
	return &CircularQueue[T]{items: make([]T, capacity)}
}

// Append adds an item to the queue. If the queue is full, the oldest item is
// overwritten and returned with dropped=true.
func (q *CircularQueue[T]) Append(item T) (old T, dropped bool) {
	if len(q.items) == 0 {
		return old, false
	}
	if q.count == len(q.items) {
		old = q.items[q.head]
		dropped = true
		q.head = (q.head + 1) % len(q.items)
	} else {
		q.count++
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	return old, dropped
}

// Pop removes and returns the oldest element. The boolean ok is false if the
// queue is empty.
func (q *CircularQueue[T]) Pop() (item T, ok bool) {
	if q.count == 0 {
		return item, false
	}
	item = q.items[q.head]
	q.head = (q.head + 1) % len(q.items)
	q.count--
	return item, true
}

// Len returns the number of items currently queued.
func (q *CircularQueue[T]) Len() int {
	return q.count
}

// Cap returns the maximum number of items the queue can hold.
func (q *CircularQueue[T]) Cap() int {
	return len(q.items)
}

// Iter yields the queued items oldest-first without removing them.
func (q *CircularQueue[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.count; i++ {
			if !yield(q.items[(q.head+i)%len(q.items)]) {
				return
			}
		}
	}
}
