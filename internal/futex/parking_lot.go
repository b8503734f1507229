package futex

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/llxisdsh/spinx/internal/opt"
)

const lotBuckets = 256

// lot is a user-space futex table.
//
// A waiter checks the word and enqueues itself under the bucket lock, and a
// waker takes the same lock before dequeuing. As long as the waker changes the
// word before calling wake, a waiter either sees the new value or is already
// queued, so no wakeup is lost.
type lot struct {
	buckets [lotBuckets]lotBucket
}

type lotBucket struct {
	mu   sync.Mutex
	head *lotWaiter
	tail *lotWaiter
	_    [opt.CacheLineSize_]byte
}

type lotWaiter struct {
	addr *uint32
	sema opt.Sema
	// next is protected by lotBucket.mu
	next *lotWaiter
}

var defaultLot lot

func (l *lot) bucket(addr *uint32) *lotBucket {
	h := uintptr(unsafe.Pointer(addr)) >> 2
	h *= 0x9E3779B9
	return &l.buckets[(h>>16)%lotBuckets]
}

func (l *lot) wait(addr *uint32, val uint32) {
	b := l.bucket(addr)
	b.mu.Lock()
	if atomic.LoadUint32(addr) != val {
		b.mu.Unlock()
		return
	}
	w := &lotWaiter{addr: addr}
	if b.tail == nil {
		b.head = w
	} else {
		b.tail.next = w
	}
	b.tail = w
	b.mu.Unlock()

	w.sema.Acquire()
}

func (l *lot) wake(addr *uint32, n int) int {
	if n <= 0 {
		return 0
	}
	b := l.bucket(addr)
	var woken *lotWaiter
	count := 0

	b.mu.Lock()
	var prev *lotWaiter
	curr := b.head
	for curr != nil && count < n {
		next := curr.next
		if curr.addr != addr {
			prev = curr
			curr = next
			continue
		}
		if prev == nil {
			b.head = next
		} else {
			prev.next = next
		}
		if curr == b.tail {
			b.tail = prev
		}
		curr.next = woken
		woken = curr
		count++
		curr = next
	}
	b.mu.Unlock()

	for woken != nil {
		next := woken.next
		woken.sema.Release()
		woken = next
	}
	return count
}
