package spinx

import (
	"runtime"
	"sync/atomic"

	"github.com/llxisdsh/spinx/internal/opt"
)

// MPMCQueue is a bounded, lock-free FIFO queue for any number of concurrent
// producers and consumers.
//
// The queue is a ring of slots. Every slot carries an epoch that says which
// half-lap around the ring it is valid for: a slot at absolute position p is
// free for a producer when its epoch equals 2p and holds a value for a
// consumer when its epoch equals 2p+1. Producers and consumers claim positions
// by CAS on the tail and head cursors and own the claimed slot until they
// publish the new epoch. Counting half-laps keeps "full on this lap" and
// "free on the next lap" apart even when the ring has a single slot.
//
// Enqueue on a full queue and Dequeue on an empty queue fail immediately;
// backpressure is up to the caller. The capacity is fixed at construction.
//
// Usage:
//
//	q := NewMPMCQueue[int](1024)
//	if !q.Enqueue(42) {
//		// full, retry later
//	}
//	v, ok := q.Dequeue()
type MPMCQueue[T any] struct {
	_    noCopy
	head atomic.Uint64
	_    [opt.CacheLineSize_ - 8]byte
	tail atomic.Uint64
	_    [opt.CacheLineSize_ - 8]byte

	mask  uint64 // capacity-1 when pow2
	pow2  bool
	size  uint64
	slots []mpmcSlot[T]
}

// The padding follows value so that a slot's value never shares a cache line
// with the next slot's epoch.
type mpmcSlot[T any] struct {
	epoch atomic.Uint64
	value T
	_     opt.SlotPad_
}

// NewMPMCQueue creates a queue holding at most capacity values.
//
// panic if capacity < 1.
func NewMPMCQueue[T any](capacity int) *MPMCQueue[T] {
	if capacity < 1 {
		panic("spinx: queue capacity must be positive")
	}
	size := uint64(capacity)
	q := &MPMCQueue[T]{
		size:  size,
		slots: make([]mpmcSlot[T], size),
	}
	if size&(size-1) == 0 {
		q.mask = size - 1
		q.pow2 = true
	}
	for i := range q.slots {
		q.slots[i].epoch.Store(2 * uint64(i))
	}
	return q
}

func (q *MPMCQueue[T]) slot(pos uint64) *mpmcSlot[T] {
	if q.pow2 {
		return &q.slots[pos&q.mask]
	}
	return &q.slots[pos%q.size]
}

// Enqueue appends v and reports whether there was room for it.
func (q *MPMCQueue[T]) Enqueue(v T) bool {
	tail := q.tail.Load()
	var s *mpmcSlot[T]
	for {
		s = q.slot(tail)
		if 2*tail > s.epoch.Load() {
			// The consumer of the previous lap has not freed this slot.
			return false
		}
		if q.tail.CompareAndSwap(tail, tail+1) {
			break
		}
		runtime.Gosched()
		tail = q.tail.Load()
	}
	s.value = v
	s.epoch.Add(1)
	return true
}

// Dequeue removes and returns the oldest value. ok is false if the queue is
// empty.
func (q *MPMCQueue[T]) Dequeue() (v T, ok bool) {
	head := q.head.Load()
	var s *mpmcSlot[T]
	for {
		s = q.slot(head)
		if 2*head+1 > s.epoch.Load() {
			return v, false
		}
		if q.head.CompareAndSwap(head, head+1) {
			break
		}
		runtime.Gosched()
		head = q.head.Load()
	}
	v = s.value
	var zero T
	s.value = zero
	// epoch was 2*head+1; 2*(head+size) makes the slot free for the next lap.
	s.epoch.Add(2*q.size - 1)
	return v, true
}

// Cap returns the queue's capacity.
func (q *MPMCQueue[T]) Cap() int {
	return int(q.size)
}

// Len returns the number of values in the queue. Under concurrent use the
// result is a snapshot that may already be stale.
func (q *MPMCQueue[T]) Len() int {
	head := q.head.Load()
	tail := q.tail.Load()
	if tail <= head {
		return 0
	}
	return int(min(tail-head, q.size))
}
