package spinx

import (
	"github.com/llxisdsh/pb"
)

// MutexGroup allows locking on arbitrary keys (string, int, struct, etc.).
//
// Features:
//   - Infinite Keys: No need to pre-allocate locks.
//   - Auto-Cleanup: A key's Mutex is dropped once no goroutine holds or waits for it.
//
// Usage:
//
//	group := NewMutexGroup[string]()
//	group.Lock("user-123")
//	// Critical section for user-123
//	group.Unlock("user-123")
type MutexGroup[K comparable] struct {
	_ noCopy
	g lockGroup[K, Mutex]
}

// NewMutexGroup creates a MutexGroup whose key table is ready for concurrent
// first use. The zero value is also usable; its table is set up by the first
// caller.
func NewMutexGroup[K comparable]() *MutexGroup[K] {
	g := &MutexGroup[K]{}
	g.g.init()
	return g
}

// Lock acquires the lock for k.
func (g *MutexGroup[K]) Lock(k K) {
	g.g.acquire(k).lock.Lock()
}

// Unlock releases the lock for k. Unlocking a key that is not locked is a no-op.
func (g *MutexGroup[K]) Unlock(k K) {
	e, ok := g.g.m.Load(k)
	if !ok {
		return
	}
	e.lock.Unlock()
	g.g.release(k)
}

// RWLockGroup allows shared reader/writer locking on arbitrary keys.
//
// Usage:
//
//	group := NewRWLockGroup[string]()
//	err := group.Read("config", func() error { return read(config) })
//	err = group.Write("config", func() error { return write(config) })
type RWLockGroup[K comparable] struct {
	_ noCopy
	g lockGroup[K, RWLock]
}

// NewRWLockGroup creates an RWLockGroup whose key table is ready for
// concurrent first use.
func NewRWLockGroup[K comparable]() *RWLockGroup[K] {
	g := &RWLockGroup[K]{}
	g.g.init()
	return g
}

// Read runs body holding k's lock in shared mode and returns body's error.
func (g *RWLockGroup[K]) Read(k K, body func() error) error {
	e := g.g.acquire(k)
	defer g.g.release(k)
	return e.lock.Read(body)
}

// Write runs body holding k's lock exclusively and returns body's error.
func (g *RWLockGroup[K]) Write(k K, body func() error) error {
	e := g.g.acquire(k)
	defer g.g.release(k)
	return e.lock.Write(body)
}

// lockGroup keeps one reference-counted L per key. ref is only touched
// inside ProcessEntry callbacks, which the map serializes per key.
type lockGroup[K comparable, L any] struct {
	m pb.MapOf[K, *lockGroupEntry[L]]
}

type lockGroupEntry[L any] struct {
	lock L
	ref  int32
}

// init lets the table shrink again, since entries come and go with every
// lock round.
func (g *lockGroup[K, L]) init() {
	g.m.InitWithOptions(pb.WithShrinkEnabled())
}

func (g *lockGroup[K, L]) acquire(k K) *lockGroupEntry[L] {
	v, _ := g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *lockGroupEntry[L]]) (*pb.EntryOf[K, *lockGroupEntry[L]], *lockGroupEntry[L], bool) {
			if l != nil {
				l.Value.ref++
				return l, l.Value, true
			}
			e := &lockGroupEntry[L]{ref: 1}
			return &pb.EntryOf[K, *lockGroupEntry[L]]{Value: e}, e, false
		},
	)
	return v
}

func (g *lockGroup[K, L]) release(k K) {
	_, _ = g.m.ProcessEntry(
		k,
		func(l *pb.EntryOf[K, *lockGroupEntry[L]]) (*pb.EntryOf[K, *lockGroupEntry[L]], *lockGroupEntry[L], bool) {
			if l == nil {
				return nil, nil, false
			}
			l.Value.ref--
			if l.Value.ref <= 0 {
				return nil, nil, true
			}
			return l, l.Value, true
		},
	)
}
