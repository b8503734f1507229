//go:build spinx_cachelinesize_128 && !spinx_cachelinesize_64

package opt

// CacheLineSize_ is forced to 128 bytes (Apple M-series, some POWER parts).
// Use: go build -tags=spinx_cachelinesize_128
const CacheLineSize_ = 128
