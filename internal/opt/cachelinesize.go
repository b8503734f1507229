//go:build !spinx_cachelinesize_64 && !spinx_cachelinesize_128

package opt

import (
	"unsafe"

	"golang.org/x/sys/cpu"
)

// CacheLineSize_ is the padding unit that keeps the queue cursors and slots,
// and the parking lot buckets, on separate cache lines. It follows the
// target architecture as reported by golang.org/x/sys/cpu.
const CacheLineSize_ = unsafe.Sizeof(cpu.CacheLinePad{})
