package spinx

import (
	"sync/atomic"

	"github.com/llxisdsh/spinx/internal/futex"
)

const (
	rwOneWriter  = 1 << 16
	rwReaderMask = rwOneWriter - 1
)

// RWLock is a reader/writer lock packed into one 32-bit word.
//
// Layout:
//   - Bits 0-15:  reader count (active readers plus readers waiting behind a writer).
//   - Bits 16-31: 1 while a writer holds the lock.
//
// Waiters sleep on the word itself and every release that may unblock
// someone wakes all of them; the scheduler decides who goes next. Neither
// readers nor writers are preferred, and at most 65535 readers may hold or
// wait for the lock at once.
//
// It is zero-value usable and must not be copied after first use.
type RWLock struct {
	_ noCopy
	w uint32
}

// Read runs body while holding the lock in shared mode and returns its error.
// The lock is released even if body panics.
func (rw *RWLock) Read(body func() error) error {
	rw.RLock()
	defer rw.RUnlock()
	return body()
}

// Write runs body while holding the lock exclusively and returns its error.
// The lock is released even if body panics.
func (rw *RWLock) Write(body func() error) error {
	rw.Lock()
	defer rw.Unlock()
	return body()
}

// RLock acquires the lock for reading.
//
// The reader is counted before it checks for a writer, which keeps new
// writers out while it waits for the current one to finish.
//
// panic if 65535 readers already hold or wait for the lock.
func (rw *RWLock) RLock() {
	s := atomic.AddUint32(&rw.w, 1)
	if s&rwReaderMask == 0 {
		// The count carried into the writer half.
		atomic.AddUint32(&rw.w, ^uint32(0))
		futex.WakeAll(&rw.w)
		panic("spinx: too many readers")
	}
	for s&^rwReaderMask != 0 {
		futex.Wait(&rw.w, s)
		s = atomic.LoadUint32(&rw.w)
	}
}

// RUnlock releases a read lock. The last reader out wakes waiting writers.
func (rw *RWLock) RUnlock() {
	if atomic.AddUint32(&rw.w, ^uint32(0)) == 0 {
		futex.WakeAll(&rw.w)
	}
}

// Lock acquires the lock for writing. It waits until there are no readers
// and no writer.
func (rw *RWLock) Lock() {
	for !atomic.CompareAndSwapUint32(&rw.w, 0, rwOneWriter) {
		if s := atomic.LoadUint32(&rw.w); s != 0 {
			futex.Wait(&rw.w, s)
		}
	}
}

// Unlock releases the write lock and wakes every waiter.
//
// Only the writer half is cleared: readers that queued up while the writer
// held the lock stay counted and proceed once they observe the cleared flag.
func (rw *RWLock) Unlock() {
	atomic.AndUint32(&rw.w, rwReaderMask)
	futex.WakeAll(&rw.w)
}
