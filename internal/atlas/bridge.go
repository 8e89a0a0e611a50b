package atlas

import "github.com/talkol/me-gotchi-atlas/internal/raster"

// separateBridges severs narrow necks between silhouettes the generator
// accidentally fused across cell boundaries. Two independent 1D passes run
// on the same raster, each mutating it in place: row-wise first (undoing
// horizontal fusion across the three columns), then column-wise (undoing
// vertical fusion across the three rows). Both passes run unconditionally.
//
// The heuristic leans on true silhouettes being wide at the body and narrow
// where two outlines happen to touch: the minimum-width cross-section inside
// the expected-bridge window is a reliable stand-in for the fusion point
// without a real min-cut. Diagonally fused silhouettes stay fused, a known
// limitation of the two-pass design.
func separateBridges(r *raster.Raster, g Grid, p Params) {
	severHorizontalFusions(r, g, p)
	severVerticalFusions(r, g, p)
}

// severHorizontalFusions walks the three row bands and cuts columns through
// parts whose width suggests they cover two or three cells.
func severHorizontalFusions(r *raster.Raster, g Grid, p Params) {
	h := r.Height()
	for band := 0; band < gridRows; band++ {
		y0 := band * h / gridRows
		y1 := (band + 1) * h / gridRows

		// Re-extract per band: earlier cuts change part membership.
		for _, part := range extractParts(r, p.AlphaThreshold, p.NoiseMaxPixels) {
			if part.Bounds.Height <= p.BridgeMinExtent {
				continue
			}
			if float64(part.massInRows(y0, y1)) < p.BridgeMassRatio*float64(part.Size()) {
				continue
			}
			fractions := splitFractions(float64(part.Bounds.Width) / g.CellWidth())
			if len(fractions) == 0 {
				continue
			}

			colCounts := columnOccupancy(part)
			for _, f := range fractions {
				cutColumn(r, part, colCounts, f, p.BridgeSearchWindow)
			}
		}
	}
}

// severVerticalFusions mirrors severHorizontalFusions on column bands,
// cutting rows instead of columns.
func severVerticalFusions(r *raster.Raster, g Grid, p Params) {
	w := r.Width()
	for band := 0; band < gridCols; band++ {
		x0 := band * w / gridCols
		x1 := (band + 1) * w / gridCols

		for _, part := range extractParts(r, p.AlphaThreshold, p.NoiseMaxPixels) {
			if part.Bounds.Width <= p.BridgeMinExtent {
				continue
			}
			if float64(part.massInCols(x0, x1)) < p.BridgeMassRatio*float64(part.Size()) {
				continue
			}
			fractions := splitFractions(float64(part.Bounds.Height) / g.CellHeight())
			if len(fractions) == 0 {
				continue
			}

			rowCounts := rowOccupancy(part)
			for _, f := range fractions {
				cutRow(r, part, rowCounts, f, p.BridgeSearchWindow)
			}
		}
	}
}

// splitFractions estimates how many cells an extent covers relative to the
// expected single-cell size and returns the relative positions to cut at:
// none below 1.5 cells, the midpoint below 2.5, otherwise thirds.
func splitFractions(ratio float64) []float64 {
	switch {
	case ratio < 1.5:
		return nil
	case ratio < 2.5:
		return []float64{0.5}
	default:
		return []float64{1.0 / 3.0, 2.0 / 3.0}
	}
}

// columnOccupancy tallies the part's member pixels per column, indexed
// relative to the part's left edge.
func columnOccupancy(part *Part) []int {
	counts := make([]int, part.Bounds.Width)
	for _, px := range part.Pixels {
		counts[px.X-part.Bounds.X]++
	}
	return counts
}

// rowOccupancy tallies the part's member pixels per row, indexed relative to
// the part's top edge.
func rowOccupancy(part *Part) []int {
	counts := make([]int, part.Bounds.Height)
	for _, px := range part.Pixels {
		counts[px.Y-part.Bounds.Y]++
	}
	return counts
}

// cutColumn erases every pixel of the part along the thinnest column within
// the search window centered on the expected split position. Ties go to the
// leftmost column; a window with no part pixels at all makes no cut and the
// part stays fused.
func cutColumn(r *raster.Raster, part *Part, colCounts []int, f float64, window int) {
	center := part.Bounds.X + int(f*float64(part.Bounds.Width))
	lo := max(center-window, part.Bounds.X)
	hi := min(center+window, part.Bounds.Right()-1)

	cut := -1
	best := 0
	for x := lo; x <= hi; x++ {
		c := colCounts[x-part.Bounds.X]
		if c == 0 {
			continue
		}
		if cut < 0 || c < best {
			cut = x
			best = c
		}
	}
	if cut < 0 {
		return
	}

	for _, px := range part.Pixels {
		if px.X == cut {
			r.Clear(px.X, px.Y)
		}
	}
}

// cutRow is cutColumn transposed: it erases the part's thinnest row within
// the window. Ties go to the topmost row.
func cutRow(r *raster.Raster, part *Part, rowCounts []int, f float64, window int) {
	center := part.Bounds.Y + int(f*float64(part.Bounds.Height))
	lo := max(center-window, part.Bounds.Y)
	hi := min(center+window, part.Bounds.Bottom()-1)

	cut := -1
	best := 0
	for y := lo; y <= hi; y++ {
		c := rowCounts[y-part.Bounds.Y]
		if c == 0 {
			continue
		}
		if cut < 0 || c < best {
			cut = y
			best = c
		}
	}
	if cut < 0 {
		return
	}

	for _, px := range part.Pixels {
		if px.Y == cut {
			r.Clear(px.X, px.Y)
		}
	}
}
