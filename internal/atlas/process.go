// Package atlas post-processes generated 3x3 illustration atlases: it
// extracts connected pixel regions, severs accidentally fused neighbors,
// assigns each region to the grid cell that owns it, and re-composites every
// cell's content at a normalized position. The engine is a pure function of
// its input raster and parameters; identical inputs produce byte-identical
// outputs.
package atlas

import (
	"fmt"

	"github.com/talkol/me-gotchi-atlas/internal/raster"
)

// Process runs the full pipeline on src with default parameters and returns
// a new raster of the same dimensions. src is never mutated.
func Process(src *raster.Raster, mode Mode) (*raster.Raster, error) {
	return ProcessWithParams(src, mode, DefaultParams())
}

// ProcessWithParams runs the full pipeline with explicit parameters.
// Validation failures surface before any work happens.
func ProcessWithParams(src *raster.Raster, mode Mode, p Params) (*raster.Raster, error) {
	if err := validate(src, mode); err != nil {
		return nil, err
	}

	g := NewGrid(src.Width(), src.Height())

	// Work on a copy so fusion-severing never touches the caller's raster.
	work := src.Clone()
	if mode == ModeSilhouette {
		separateBridges(work, g, p)
	}

	parts := extractParts(work, p.AlphaThreshold, p.NoiseMaxPixels)
	cells := resolveOwnership(parts, g, mode, p)

	out := raster.New(src.Width(), src.Height())
	composite(out, work, g, cells, alignmentFor(mode))
	return out, nil
}

func validate(src *raster.Raster, mode Mode) error {
	if src.Width() != Size || src.Height() != Size {
		return fmt.Errorf("%w, got %dx%d", ErrDimensions, src.Width(), src.Height())
	}
	switch mode {
	case ModeIcon, ModeGeneric, ModeSilhouette:
	default:
		return fmt.Errorf("%w: %d", ErrMode, int(mode))
	}
	return nil
}

// Report describes what the engine saw and decided for one input, without
// producing an output raster. Used by the inspection tool.
type Report struct {
	Mode  Mode         `json:"mode"`
	Parts []PartReport `json:"parts"`
}

// PartReport is the per-part slice of a Report.
type PartReport struct {
	Bounds     [4]int `json:"bounds"` // x, y, width, height
	Pixels     int    `json:"pixels"`
	CellCounts [9]int `json:"cell_counts"`
	Span       int    `json:"span"`
	Owner      int    `json:"owner"` // -1 when rejected
	Rejected   string `json:"rejected,omitempty"`
}

// Analyze runs the extraction and ownership stages (including
// fusion-severing in silhouette mode) and reports every surviving part's
// tally and verdict. src is never mutated.
func Analyze(src *raster.Raster, mode Mode, p Params) (*Report, error) {
	if err := validate(src, mode); err != nil {
		return nil, err
	}

	g := NewGrid(src.Width(), src.Height())
	work := src.Clone()
	if mode == ModeSilhouette {
		separateBridges(work, g, p)
	}

	rep := &Report{Mode: mode}
	for _, part := range extractParts(work, p.AlphaThreshold, p.NoiseMaxPixels) {
		o := tallyPart(part, g)
		pr := PartReport{
			Bounds: [4]int{part.Bounds.X, part.Bounds.Y, part.Bounds.Width, part.Bounds.Height},
			Pixels: part.Size(),
			Span:   o.span,
			Owner:  o.owner,
		}
		copy(pr.CellCounts[:], o.counts[:])
		if reason := rejectReason(o, g, mode, p); reason != "" {
			pr.Owner = -1
			pr.Rejected = reason
		}
		rep.Parts = append(rep.Parts, pr)
	}
	return rep, nil
}
