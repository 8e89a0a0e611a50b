package atlas

import "fmt"

// Mode selects the ownership filtering and placement policy for one atlas.
type Mode int

const (
	// ModeIcon expects nine compact drawings, one per cell, centered.
	// Anything touching three or more cells is treated as a background
	// artifact.
	ModeIcon Mode = iota
	// ModeGeneric is the background-tolerant variant of ModeIcon: only
	// parts smeared across more than five cells are discarded.
	ModeGeneric
	// ModeSilhouette expects nine character poses. Fused neighbors are
	// severed first, strays are filtered by size and grid alignment, and
	// surviving groups are bottom-aligned in their cells.
	ModeSilhouette
)

func (m Mode) String() string {
	switch m {
	case ModeIcon:
		return "icon"
	case ModeGeneric:
		return "generic"
	case ModeSilhouette:
		return "silhouette"
	default:
		return "unknown"
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "icon":
		return ModeIcon, nil
	case "generic":
		return ModeGeneric, nil
	case "silhouette":
		return ModeSilhouette, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrMode, s)
}

// Params controls the engine heuristics. The defaults are tuned for
// 1024x1024 atlases from the image generator; tests override individual
// fields where a property needs isolating.
type Params struct {

	// AlphaThreshold is the opacity cutoff: a pixel belongs to a part when
	// its alpha exceeds this value. 10 excludes the anti-aliased
	// near-transparent fringe, not just alpha 0.
	AlphaThreshold uint8

	// NoiseMaxPixels is the largest part size still discarded as rendering
	// noise. Parts must exceed it to survive extraction.
	NoiseMaxPixels int

	// BridgeMinExtent is the minimum part height (row pass) or width
	// (column pass) for fusion-severing to consider the part at all. Thin
	// slivers never qualify.
	BridgeMinExtent int

	// BridgeMassRatio is the fraction of a part's pixel mass that must fall
	// inside a band before the part is treated as belonging to it. Excludes
	// parts merely grazing the band.
	BridgeMassRatio float64

	// BridgeSearchWindow is the half-width, in pixels, of the search window
	// around each expected split position.
	BridgeSearchWindow int

	// SilhouetteMinSize and SilhouetteMaxSize bound the acceptable bounding
	// box edge lengths in silhouette mode.
	SilhouetteMinSize int
	SilhouetteMaxSize int

	// SnapRatio is the largest allowed distance from a bounding box edge to
	// the nearest grid line, as a fraction of the cell size, in silhouette
	// mode.
	SnapRatio float64
}

// DefaultParams returns the production engine parameters.
func DefaultParams() Params {
	return Params{
		AlphaThreshold:     10,
		NoiseMaxPixels:     3,
		BridgeMinExtent:    50,
		BridgeMassRatio:    0.30,
		BridgeSearchWindow: 20,
		SilhouetteMinSize:  200,
		SilhouetteMaxSize:  400,
		SnapRatio:          0.20,
	}
}
