package spinx

import (
	"time"
	_ "unsafe" // for linkname
)

// noCopy makes `go vet -copylocks` flag copies of the struct that holds it.
// Use it as a named field, never embedded.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// pause executes a short burst of processor PAUSE instructions without
// giving up the P.
func pause() {
	runtime_doSpin()
}

// backoffSleep is the sleep a backoff falls back to once the runtime refuses
// further spinning, on the order of folly's Sleeper.
const backoffSleep = 500 * time.Microsecond

// backoff paces a wait loop: processor spins while the runtime allows them,
// then a short sleep, then spins again.
type backoff struct {
	spins int
}

func (b *backoff) wait() {
	if runtime_canSpin(b.spins) {
		b.spins++
		runtime_doSpin()
		return
	}
	b.spins = 0
	time.Sleep(backoffSleep)
}

// nolint:all
//
//go:linkname runtime_canSpin sync.runtime_canSpin
//goland:noinspection ALL
func runtime_canSpin(i int) bool

// nolint:all
//
//go:linkname runtime_doSpin sync.runtime_doSpin
//goland:noinspection ALL
func runtime_doSpin()
