package spinx

import (
	"sync/atomic"
)

// TicketLock is a fair, FIFO spin lock.
//
// Lock takes a ticket and waits until the serving counter reaches it, so
// goroutines acquire the lock in the exact order they called Lock. Waiting
// spins first and then backs off with short sleeps.
//
// Semaphore uses it as the locker behind its condition variable so that even
// the internal lock hand-off does not let a newcomer barge ahead.
//
// It is zero-value usable and implements sync.Locker.
type TicketLock struct {
	_       noCopy
	next    atomic.Uint32
	serving atomic.Uint32
}

// Lock blocks until every earlier ticket has been served.
func (m *TicketLock) Lock() {
	ticket := m.next.Add(1) - 1
	var b backoff
	for m.serving.Load() != ticket {
		b.wait()
	}
}

// TryLock acquires the lock only if no one holds or waits for it.
func (m *TicketLock) TryLock() bool {
	s := m.serving.Load()
	return m.next.CompareAndSwap(s, s+1)
}

// Unlock releases the lock.
func (m *TicketLock) Unlock() {
	m.serving.Add(1)
}
