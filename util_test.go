package spinx

import (
	"testing"
	"time"
)

func TestBackoff_FallsBackToSleep(t *testing.T) {
	var b backoff
	const calls = 20
	start := time.Now()
	for range calls {
		b.wait()
		if b.spins > 4 {
			t.Fatalf("spins = %d, the runtime allows at most 4", b.spins)
		}
	}
	// At most four spins run between sleeps.
	if elapsed, want := time.Since(start), calls/5*backoffSleep; elapsed < want {
		t.Fatalf("%d waits took %v, want at least %v", calls, elapsed, want)
	}
}
