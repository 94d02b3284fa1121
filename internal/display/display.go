// Package display provides the e-paper text surface with hardware abstraction.
// The panel is owned by a display co-processor reachable over a serial line;
// the fake implementation allows testing without hardware.
//
// The surface is a small set of indexed text regions. Writes are batched:
// SetText with refresh=false stages a region, refresh=true stages and then
// commits every staged region in one physical panel refresh. E-paper refreshes
// are slow and visible, so callers stage all regions of a layout and commit
// once.
package display

// Region indices on the panel.
const (
	RegionPrimary = 0 // large centered text box
	RegionUpper   = 1 // upper half box, dual-duration mode
	RegionLower   = 2 // lower half box, dual-duration mode

	RegionCount = 3
)

// Surface writes text to the display regions.
type Surface interface {
	// SetText stages text into the given region. If refresh is true the
	// panel is refreshed after staging. Returns an error for out-of-range
	// regions or link failures.
	SetText(region int, text string, refresh bool) error

	// Close releases the display link.
	Close() error
}
