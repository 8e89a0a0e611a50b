package atlas

import "fmt"

// ownership is the per-cell pixel tally for one part, with the derived span
// and owner cell.
type ownership struct {
	part   *Part
	counts [cellCount]int
	span   int
	owner  int
}

// tallyPart counts the part's member pixels per grid cell and derives the
// span (distinct cells touched) and owner (cell with the highest count, ties
// broken by the first cell in row-major order).
func tallyPart(part *Part, g Grid) ownership {
	o := ownership{part: part}
	for _, px := range part.Pixels {
		o.counts[g.CellIndexAt(px.X, px.Y)]++
	}
	for idx, n := range o.counts {
		if n == 0 {
			continue
		}
		o.span++
		if n > o.counts[o.owner] || o.counts[o.owner] == 0 {
			o.owner = idx
		}
	}
	return o
}

// rejectReason applies the mode's acceptance filter to a tallied part and
// returns a non-empty reason when the part must be discarded. Filters run
// before ownership matters, per the resolver contract.
func rejectReason(o ownership, g Grid, mode Mode, p Params) string {
	switch mode {
	case ModeIcon:
		// Icons are compact; border-spanning blobs are background artifacts.
		if o.span >= 3 {
			return fmt.Sprintf("span %d >= 3", o.span)
		}
	case ModeGeneric:
		if o.span > 5 {
			return fmt.Sprintf("span %d > 5", o.span)
		}
	case ModeSilhouette:
		if o.span >= 5 {
			return fmt.Sprintf("span %d >= 5", o.span)
		}
		b := o.part.Bounds
		if b.Width < p.SilhouetteMinSize || b.Width > p.SilhouetteMaxSize ||
			b.Height < p.SilhouetteMinSize || b.Height > p.SilhouetteMaxSize {
			return fmt.Sprintf("bounds %dx%d outside [%d,%d]",
				b.Width, b.Height, p.SilhouetteMinSize, p.SilhouetteMaxSize)
		}
		// Large stray shapes not roughly aligned to a cell: every bounding
		// box edge must sit near a grid line on its own axis.
		maxDX := int(p.SnapRatio * g.CellWidth())
		maxDY := int(p.SnapRatio * g.CellHeight())
		if g.NearestVLineDist(b.X) > maxDX || g.NearestVLineDist(b.Right()) > maxDX {
			return fmt.Sprintf("vertical edges farther than %dpx from grid lines", maxDX)
		}
		if g.NearestHLineDist(b.Y) > maxDY || g.NearestHLineDist(b.Bottom()) > maxDY {
			return fmt.Sprintf("horizontal edges farther than %dpx from grid lines", maxDY)
		}
	}
	return ""
}

// resolveOwnership classifies every part and returns, per cell, the ordered
// list of approved parts. A part is approved for a cell only when that cell
// is its owner; rejected parts appear nowhere. Empty cells are a valid,
// silent outcome.
func resolveOwnership(parts []*Part, g Grid, mode Mode, p Params) [][]*Part {
	cells := make([][]*Part, cellCount)
	for _, part := range parts {
		o := tallyPart(part, g)
		if rejectReason(o, g, mode, p) != "" {
			continue
		}
		cells[o.owner] = append(cells[o.owner], part)
	}
	return cells
}
