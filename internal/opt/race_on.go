//go:build race

package opt

// Race_ reports that the binary was built with the race detector.
// Timing and CPU-usage assertions are relaxed in that mode.
const Race_ = true
