package atlas

import (
	"github.com/talkol/me-gotchi-atlas/internal/raster"
	"github.com/talkol/me-gotchi-atlas/pkg/geometry"
)

// Part is a maximal 4-connected region of opaque pixels discovered by flood
// fill. Pixels are stored in visitation order; parts are recomputed from
// scratch on every engine invocation and carry no identity across calls.
type Part struct {
	Pixels []geometry.PointInt
	Bounds geometry.RectInt
}

// Size returns the number of member pixels.
func (p *Part) Size() int {
	return len(p.Pixels)
}

// massInRows counts member pixels with y in [y0, y1).
func (p *Part) massInRows(y0, y1 int) int {
	n := 0
	for _, px := range p.Pixels {
		if px.Y >= y0 && px.Y < y1 {
			n++
		}
	}
	return n
}

// massInCols counts member pixels with x in [x0, x1).
func (p *Part) massInCols(x0, x1 int) int {
	n := 0
	for _, px := range p.Pixels {
		if px.X >= x0 && px.X < x1 {
			n++
		}
	}
	return n
}

// extractParts scans the raster top-down left-right and flood-fills every
// unvisited opaque pixel (alpha > threshold) into a part. Parts of at most
// noiseMax pixels are discarded as rendering noise. The scan and the
// stack-based fill are fully deterministic, so identical input yields
// byte-identical part lists; golden-image tests depend on that.
func extractParts(r *raster.Raster, threshold uint8, noiseMax int) []*Part {
	w, h := r.Width(), r.Height()
	visited := make([]bool, w*h)

	var parts []*Part
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if visited[y*w+x] || r.Alpha(x, y) <= threshold {
				continue
			}
			part := floodFill(r, visited, x, y, threshold)
			if part.Size() > noiseMax {
				parts = append(parts, part)
			}
		}
	}
	return parts
}

// floodFill collects the 4-connected opaque region containing (startX,
// startY) using an explicit stack. Recursion is off the table here: a fully
// opaque 1024x1024 raster would be a million frames deep.
func floodFill(r *raster.Raster, visited []bool, startX, startY int, threshold uint8) *Part {
	w, h := r.Width(), r.Height()
	minX, minY := startX, startY
	maxX, maxY := startX, startY

	part := &Part{}
	stack := []geometry.PointInt{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		idx := p.Y*w + p.X
		if visited[idx] || r.Alpha(p.X, p.Y) <= threshold {
			continue
		}

		visited[idx] = true
		part.Pixels = append(part.Pixels, p)

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		stack = append(stack,
			geometry.PointInt{X: p.X - 1, Y: p.Y},
			geometry.PointInt{X: p.X + 1, Y: p.Y},
			geometry.PointInt{X: p.X, Y: p.Y - 1},
			geometry.PointInt{X: p.X, Y: p.Y + 1},
		)
	}

	part.Bounds = geometry.RectInt{
		X: minX, Y: minY,
		Width:  maxX - minX + 1,
		Height: maxY - minY + 1,
	}
	return part
}
