package spinx

import (
	"sync/atomic"

	"github.com/llxisdsh/spinx/internal/futex"
)

const (
	mutexUnlocked  = 0
	mutexLocked    = 1
	mutexContended = 2

	// mutexSpins is the number of CAS attempts Lock makes before parking.
	mutexSpins = 4
)

// Mutex is a mutual exclusion lock that parks waiters on its state word.
//
// State:
//   - 0: unlocked.
//   - 1: locked, nobody parked.
//   - 2: locked, waiters may be parked.
//
// The uncontended Lock/Unlock pair costs one atomic operation each and no
// system calls. A contended Lock spins briefly, then sleeps until an Unlock
// wakes it, so a waiter burns no CPU while the lock is held.
//
// There is no FIFO guarantee among waiters. It is zero-value usable.
//
// Size: 4 bytes.
type Mutex struct {
	_     noCopy
	state uint32
}

// Lock acquires the lock, sleeping if it is held by another goroutine.
func (m *Mutex) Lock() {
	if m.tryLock() {
		return
	}
	m.park()
}

// TryLock acquires the lock if it is free and reports whether it did.
func (m *Mutex) TryLock() bool {
	return atomic.CompareAndSwapUint32(&m.state, mutexUnlocked, mutexLocked)
}

// Unlock releases the lock and wakes one parked waiter if there may be any.
func (m *Mutex) Unlock() {
	if atomic.AddUint32(&m.state, ^uint32(0)) != mutexUnlocked {
		// Was contended. Reset to unlocked outright rather than re-checking;
		// the woken waiter marks the lock contended again when it retakes it.
		atomic.StoreUint32(&m.state, mutexUnlocked)
		futex.Wake(&m.state, 1)
	}
}

func (m *Mutex) tryLock() bool {
	for i := 0; ; i++ {
		if atomic.CompareAndSwapUint32(&m.state, mutexUnlocked, mutexLocked) {
			return true
		}
		if i+1 == mutexSpins {
			return false
		}
		pause()
	}
}

func (m *Mutex) park() {
	for {
		// Swapping in 2 both announces a waiter and, if the lock was
		// released meanwhile, acquires it.
		if atomic.SwapUint32(&m.state, mutexContended) == mutexUnlocked {
			return
		}
		futex.Wait(&m.state, mutexContended)
		if m.tryLock() {
			// Others may still be parked: keep the lock marked contended
			// so our Unlock wakes one of them.
			atomic.StoreUint32(&m.state, mutexContended)
			return
		}
	}
}
