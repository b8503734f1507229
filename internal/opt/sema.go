package opt

import (
	_ "unsafe" // for linkname
)

// Sema parks and unparks goroutines through the runtime's own semaphore,
// the same one sync.Mutex and sync.WaitGroup sleep on. A Release that comes
// before the matching Acquire is remembered, so the pair cannot miss a wakeup.
//
// The zero value has no pending releases.
type Sema uint32

// Acquire blocks until a Release is available and consumes it.
func (s *Sema) Acquire() {
	runtime_semacquire((*uint32)(s))
}

// Release wakes one goroutine blocked in Acquire, or banks the release.
func (s *Sema) Release() {
	runtime_semrelease((*uint32)(s), false, 0)
}

//go:linkname runtime_semacquire sync.runtime_Semacquire
func runtime_semacquire(s *uint32)

//go:linkname runtime_semrelease sync.runtime_Semrelease
func runtime_semrelease(s *uint32, handoff bool, skipframes int)
