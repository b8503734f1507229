package spinx

import (
	"sync"
)

// Semaphore is a counting semaphore that admits waiters strictly in arrival
// order.
//
// Each Acquire draws a ticket and proceeds only once every earlier ticket has
// been admitted and a resource is available. A later caller never overtakes
// an earlier one, even if resources are free for it, which distinguishes it
// from a plain counting semaphore.
//
// Waiters sleep on a condition variable; correctness of the ordering is
// preferred over throughput.
//
// A Semaphore must be created with NewSemaphore.
type Semaphore struct {
	_    noCopy
	mu   TicketLock
	cond sync.Cond

	count int
	// ticket is the next ticket handed out, top the highest ticket admitted.
	// top <= ticket.
	ticket int64
	top    int64
}

// NewSemaphore creates a semaphore with count available resources.
//
// panic if count < 0.
func NewSemaphore(count int) *Semaphore {
	if count < 0 {
		panic("spinx: semaphore count must not be negative")
	}
	s := &Semaphore{count: count}
	s.cond.L = &s.mu
	return s
}

// Acquire takes one resource, blocking until it is this caller's turn and a
// resource is available.
func (s *Semaphore) Acquire() {
	s.AcquireFunc(func(count *int) { *count-- })
}

// AcquireFunc waits like Acquire, then calls transform with the resource
// count while still holding the semaphore's lock. transform decides how much
// to take; the common case decrements by one.
func (s *Semaphore) AcquireFunc(transform func(count *int)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	my := s.ticket
	s.ticket++
	for s.count <= 0 || my > s.top {
		if s.count > 0 {
			// Resources exist but it is not our turn: pass the wakeup on so
			// the ticket holder that is due gets to run.
			s.cond.Signal()
		}
		s.cond.Wait()
	}
	transform(&s.count)
	s.top++
	if s.count > 0 && s.ticket > s.top {
		// The next ticket may have been woken, found itself not yet due and
		// gone back to sleep. Hand it the leftover resources.
		s.cond.Signal()
	}
}

// TryAcquire takes one resource without blocking. It fails if a resource is
// not available or if earlier callers are still waiting their turn.
func (s *Semaphore) TryAcquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.count <= 0 || s.ticket != s.top {
		return false
	}
	s.ticket++
	s.count--
	s.top++
	return true
}

// Release returns one resource and wakes a waiter.
func (s *Semaphore) Release() {
	s.mu.Lock()
	s.count++
	s.cond.Signal()
	s.mu.Unlock()
}

// Available returns the number of resources not currently held.
func (s *Semaphore) Available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
