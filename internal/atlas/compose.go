package atlas

import (
	"github.com/talkol/me-gotchi-atlas/internal/raster"
	"github.com/talkol/me-gotchi-atlas/pkg/geometry"
)

// alignment selects where a cell's approved group lands inside its cell.
type alignment int

const (
	alignCenter alignment = iota
	alignBottom
)

// alignmentFor maps a processing mode to its placement rule. Silhouettes
// stand on the cell floor; everything else is centered.
func alignmentFor(mode Mode) alignment {
	if mode == ModeSilhouette {
		return alignBottom
	}
	return alignCenter
}

// floorDiv divides with flooring so that negative offsets (a group larger
// than its cell) shift toward the origin instead of truncating toward zero.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// composite copies every approved part into dst at its cell-aligned
// position. All parts owned by a cell move as a single rigid group: one
// union bounding box, one translation. Pixels are copied verbatim across
// all four channels; destinations outside the raster are dropped without
// error so oversized groups degrade gracefully.
func composite(dst, src *raster.Raster, g Grid, cells [][]*Part, align alignment) {
	for idx, parts := range cells {
		if len(parts) == 0 {
			continue
		}
		group := geometry.RectInt{}
		for _, p := range parts {
			group = group.Union(p.Bounds)
		}
		cell := g.CellRect(idx)

		targetX := cell.X + floorDiv(cell.Width-group.Width, 2)
		var targetY int
		if align == alignBottom {
			// Bottom edges coincide; tall groups overflow upward.
			targetY = cell.Bottom() - group.Height
		} else {
			targetY = cell.Y + floorDiv(cell.Height-group.Height, 2)
		}

		dx := targetX - group.X
		dy := targetY - group.Y
		for _, p := range parts {
			for _, px := range p.Pixels {
				nx, ny := px.X+dx, px.Y+dy
				if nx < 0 || ny < 0 || nx >= dst.Width() || ny >= dst.Height() {
					continue
				}
				so := src.Offset(px.X, px.Y)
				do := dst.Offset(nx, ny)
				copy(dst.Pix()[do:do+raster.Channels], src.Pix()[so:so+raster.Channels])
			}
		}
	}
}
