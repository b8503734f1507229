//go:build !linux || !spinx_futex_syscall

package futex

// Syscall reports whether Wait blocks in the kernel instead of parking the
// goroutine.
const Syscall = false

// Wait parks the calling goroutine if *addr still equals val.
func Wait(addr *uint32, val uint32) {
	defaultLot.wait(addr, val)
}

// Wake wakes at most n goroutines waiting on addr and returns how many were woken.
func Wake(addr *uint32, n int) int {
	return defaultLot.wake(addr, n)
}
