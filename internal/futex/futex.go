// Package futex provides the "wait while a word equals X" / "wake waiters on
// that word" pair the blocking locks are built on.
//
// By default the pair is a parking lot: a fixed table of wait queues keyed by
// the word's address, whose waiters park on the runtime semaphore like any
// blocked goroutine. On Linux the spinx_futex_syscall tag maps the pair onto
// the futex(2) system call instead, which pins one OS thread per waiter.
//
// Both implementations may wake a waiter spuriously. Callers always re-check
// the word after Wait returns.
package futex

import "math"

// WakeAll wakes every goroutine waiting on addr.
func WakeAll(addr *uint32) {
	Wake(addr, math.MaxInt32)
}
