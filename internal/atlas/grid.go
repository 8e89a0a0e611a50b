package atlas

import "github.com/talkol/me-gotchi-atlas/pkg/geometry"

// Size is the fixed atlas edge length in pixels.
const Size = 1024

// The atlas is always partitioned 3x3.
const (
	gridCols  = 3
	gridRows  = 3
	cellCount = gridCols * gridRows
)

// Grid is the fixed 3x3 partition of the atlas into cells. Cell boundaries
// use floor(c*W/3) arithmetic, so the rightmost column and bottom row absorb
// the rounding remainder (341/341/342 at 1024). The per-coordinate lookup
// tables make pixel-to-cell classification a pair of array reads instead of
// nine rectangle tests per pixel.
type Grid struct {
	width  int
	height int
	colOf  []int // x -> cell column
	rowOf  []int // y -> cell row
}

// NewGrid builds the 3x3 grid for a raster of the given dimensions.
func NewGrid(width, height int) Grid {
	g := Grid{
		width:  width,
		height: height,
		colOf:  make([]int, width),
		rowOf:  make([]int, height),
	}
	for cx := 0; cx < gridCols; cx++ {
		for x := cx * width / gridCols; x < (cx+1)*width/gridCols; x++ {
			g.colOf[x] = cx
		}
	}
	for cy := 0; cy < gridRows; cy++ {
		for y := cy * height / gridRows; y < (cy+1)*height/gridRows; y++ {
			g.rowOf[y] = cy
		}
	}
	return g
}

// Cell returns the pixel rectangle of cell (cx, cy).
func (g Grid) Cell(cx, cy int) geometry.RectInt {
	x0 := cx * g.width / gridCols
	x1 := (cx + 1) * g.width / gridCols
	y0 := cy * g.height / gridRows
	y1 := (cy + 1) * g.height / gridRows
	return geometry.RectInt{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// CellRect returns the pixel rectangle of the cell with row-major index idx.
func (g Grid) CellRect(idx int) geometry.RectInt {
	return g.Cell(idx%gridCols, idx/gridCols)
}

// CellIndexAt returns the row-major index of the cell containing pixel (x, y).
func (g Grid) CellIndexAt(x, y int) int {
	return g.rowOf[y]*gridCols + g.colOf[x]
}

// CellWidth returns the expected single-cell width (W/3, unrounded).
func (g Grid) CellWidth() float64 {
	return float64(g.width) / gridCols
}

// CellHeight returns the expected single-cell height (H/3, unrounded).
func (g Grid) CellHeight() float64 {
	return float64(g.height) / gridRows
}

// NearestVLineDist returns the distance from x to the nearest vertical grid
// line (including the raster's left and right edges).
func (g Grid) NearestVLineDist(x int) int {
	best := -1
	for c := 0; c <= gridCols; c++ {
		line := c * g.width / gridCols
		d := x - line
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// NearestHLineDist returns the distance from y to the nearest horizontal grid
// line (including the raster's top and bottom edges).
func (g Grid) NearestHLineDist(y int) int {
	best := -1
	for c := 0; c <= gridRows; c++ {
		line := c * g.height / gridRows
		d := y - line
		if d < 0 {
			d = -d
		}
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}
