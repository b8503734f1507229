//go:build !spinx_disable_padding

package opt

// SlotPad_ trails each queue slot so that producers and consumers working on
// adjacent slots do not share a cache line.
type SlotPad_ [CacheLineSize_]byte
