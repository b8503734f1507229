package spinx

import (
	"runtime"
	"sync/atomic"
)

// spinLockPolls is how many failed polls SpinLock makes before yielding.
const spinLockPolls = 10

// SpinLock is a busy-wait mutual exclusion lock.
//
// A waiter polls the flag and hands its time slice back to the scheduler
// every few polls, so a waiting goroutine keeps consuming CPU for as long as
// the lock is held. Use it only around critical sections of a few
// instructions; there is no fairness and starvation under heavy contention is
// possible.
//
// It is zero-value usable and must not be copied after first use.
type SpinLock struct {
	_      noCopy
	locked atomic.Bool
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	polls := 0
	for l.locked.Swap(true) {
		for l.locked.Load() {
			if polls++; polls >= spinLockPolls {
				runtime.Gosched()
				polls = 0
			}
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	return !l.locked.Swap(true)
}

// Unlock releases the lock.
func (l *SpinLock) Unlock() {
	l.locked.Store(false)
}
