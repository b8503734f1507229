// Package spinx provides low-level synchronization primitives:
//
//   - SpinLock: busy-wait lock that yields the processor after a few polls.
//   - Mutex: three-state futex-style lock; waiters park instead of spinning.
//   - RWLock: reader/writer lock packed into a single 32-bit word.
//   - Semaphore: counting semaphore that admits waiters strictly in arrival order.
//   - MPMCQueue: bounded lock-free queue for many producers and many consumers.
//
// None of the primitives support timeouts or cancellation, and none detect
// misuse such as unlocking a lock that is not held.
//
// Keyed variants (MutexGroup, RWLockGroup) lock on arbitrary comparable keys.
package spinx
