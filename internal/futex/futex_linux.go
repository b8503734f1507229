//go:build linux && spinx_futex_syscall

package futex

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Syscall reports whether Wait blocks in the kernel instead of parking the
// goroutine.
const Syscall = true

const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128

	futexWaitPrivate = futexWait | futexPrivateFlag
	futexWakePrivate = futexWake | futexPrivateFlag
)

// Wait puts the calling goroutine's thread to sleep if *addr still equals val.
// It returns when woken, when *addr no longer equals val, or on a signal.
//
// The thread stays blocked for the whole wait, so every waiter costs one OS
// thread and a program is bounded by debug.SetMaxThreads.
func Wait(addr *uint32, val uint32) {
	// EAGAIN (value changed) and EINTR are both ordinary spurious returns.
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWaitPrivate,
		uintptr(val),
		0, 0, 0,
	)
}

// Wake wakes at most n goroutines waiting on addr and returns how many were woken.
func Wake(addr *uint32, n int) int {
	if n <= 0 {
		return 0
	}
	r, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWakePrivate,
		uintptr(n),
		0, 0, 0,
	)
	if errno != 0 {
		return 0
	}
	return int(r)
}
