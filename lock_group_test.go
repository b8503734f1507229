package spinx

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMutexGroup_Basic(t *testing.T) {
	g := NewMutexGroup[string]()
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	counter := 0
	for range n {
		go func() {
			defer wg.Done()
			g.Lock("k")
			counter++
			g.Unlock("k")
		}()
	}
	wg.Wait()
	if counter != n {
		t.Fatalf("counter = %d, want %d", counter, n)
	}
	if _, ok := g.g.m.Load("k"); ok {
		t.Fatal("entry should be removed after the last Unlock")
	}
}

func TestMutexGroup_KeysIndependent(t *testing.T) {
	var g MutexGroup[int]
	g.Lock(1)

	done := make(chan struct{})
	go func() {
		g.Lock(2)
		g.Unlock(2)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on key 2 blocked by key 1")
	}

	blocked := make(chan struct{})
	go func() {
		g.Lock(1)
		close(blocked)
		g.Unlock(1)
	}()
	select {
	case <-blocked:
		t.Fatal("Lock(1) acquired while held")
	case <-time.After(20 * time.Millisecond):
	}
	g.Unlock(1)
	<-blocked
}

func TestMutexGroup_UnlockUnknownKey(t *testing.T) {
	var g MutexGroup[string]
	g.Unlock("missing")
	if _, ok := g.g.m.Load("missing"); ok {
		t.Fatal("Unlock created an entry")
	}
}

func TestRWLockGroup_Basic(t *testing.T) {
	g := NewRWLockGroup[string]()
	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)

	for range n {
		go func() {
			defer wg.Done()
			_ = g.Read("key", func() error {
				time.Sleep(time.Microsecond)
				return nil
			})
		}()
	}
	wg.Wait()

	entered := make(chan struct{})
	release := make(chan struct{})
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		_ = g.Write("key", func() error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	done := make(chan struct{})
	go func() {
		_ = g.Read("key", func() error { return nil })
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("Read ran while Write held the key")
	case <-time.After(10 * time.Millisecond):
	}
	close(release)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Read not admitted after Write finished")
	}
	<-writerDone
	if _, ok := g.g.m.Load("key"); ok {
		t.Fatal("entry should be removed after the last holder left")
	}
}

func TestRWLockGroup_ZeroValueFirstUse(t *testing.T) {
	var g RWLockGroup[int]
	// The first call sets up the table before any concurrent use.
	if err := g.Read(0, func() error { return nil }); err != nil {
		t.Fatalf("Read = %v, want nil", err)
	}

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	var writes atomic.Int32
	for i := range n {
		go func() {
			defer wg.Done()
			_ = g.Write(i%5, func() error {
				writes.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()
	if got := writes.Load(); got != n {
		t.Fatalf("writes = %d, want %d", got, n)
	}
	if size := g.g.m.Size(); size != 0 {
		t.Fatalf("table size = %d, want 0", size)
	}
}

func TestRWLockGroup_ErrorAndCleanup(t *testing.T) {
	var g RWLockGroup[int]
	errBody := errors.New("body failed")
	var writers atomic.Int32

	err := g.Write(1, func() error {
		writers.Add(1)
		if _, ok := g.g.m.Load(1); !ok {
			t.Error("entry should exist while the lock is held")
		}
		return errBody
	})
	if !errors.Is(err, errBody) {
		t.Fatalf("Write error = %v, want %v", err, errBody)
	}
	if writers.Load() != 1 {
		t.Fatalf("body ran %d times, want 1", writers.Load())
	}
	if _, ok := g.g.m.Load(1); ok {
		t.Fatal("entry should be removed after Write returns")
	}
}
