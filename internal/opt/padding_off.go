//go:build spinx_disable_padding

package opt

// SlotPad_ is empty: padding is force-disabled via the spinx_disable_padding build tag.
// Use: go build -tags=spinx_disable_padding
type SlotPad_ struct{}
