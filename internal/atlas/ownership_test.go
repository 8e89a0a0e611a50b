package atlas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkol/me-gotchi-atlas/internal/raster"
	"github.com/talkol/me-gotchi-atlas/pkg/geometry"
)

// partFromRect builds a rectangular part fixture without going through
// extraction.
func partFromRect(rect geometry.RectInt) *Part {
	p := &Part{Bounds: rect}
	for y := rect.Y; y < rect.Bottom(); y++ {
		for x := rect.X; x < rect.Right(); x++ {
			p.Pixels = append(p.Pixels, geometry.PointInt{X: x, Y: y})
		}
	}
	return p
}

func TestTallyPartSpanAndOwner(t *testing.T) {
	g := NewGrid(Size, Size)

	// Straddles the x=341 line: 11 columns in cell 0, 10 in cell 1.
	o := tallyPart(partFromRect(geometry.NewRectInt(330, 0, 21, 11)), g)
	assert.Equal(t, 2, o.span)
	assert.Equal(t, 0, o.owner)
	assert.Equal(t, 121, o.counts[0])
	assert.Equal(t, 110, o.counts[1])
}

func TestTallyPartTieBreaksToFirstCell(t *testing.T) {
	g := NewGrid(Size, Size)

	// Exactly 10 columns on each side of x=341.
	o := tallyPart(partFromRect(geometry.NewRectInt(331, 0, 20, 10)), g)
	assert.Equal(t, 100, o.counts[0])
	assert.Equal(t, 100, o.counts[1])
	assert.Equal(t, 0, o.owner)
}

func TestTallyPartOwnerInLaterCell(t *testing.T) {
	g := NewGrid(Size, Size)

	o := tallyPart(partFromRect(geometry.NewRectInt(500, 500, 30, 30)), g)
	assert.Equal(t, 1, o.span)
	assert.Equal(t, 4, o.owner)
}

func TestRejectIconSpan(t *testing.T) {
	g := NewGrid(Size, Size)
	p := DefaultParams()

	wide := tallyPart(partFromRect(geometry.NewRectInt(300, 0, 400, 11)), g)
	require.Equal(t, 3, wide.span)
	assert.NotEmpty(t, rejectReason(wide, g, ModeIcon, p))
	assert.Empty(t, rejectReason(wide, g, ModeGeneric, p),
		"generic mode tolerates background-sized parts")

	narrow := tallyPart(partFromRect(geometry.NewRectInt(330, 0, 21, 11)), g)
	require.Equal(t, 2, narrow.span)
	assert.Empty(t, rejectReason(narrow, g, ModeIcon, p))
}

func TestRejectIconDiagonalArtifact(t *testing.T) {
	r := raster.New(Size, Size)
	// A 2px staircase from corner to corner, like a stray gradient seam.
	// It only ever touches the three diagonal cells, but that is already
	// too many for icon mode.
	for i := 0; i < Size-1; i++ {
		r.Set(i, i, opaque)
		r.Set(i+1, i, opaque)
	}

	g := NewGrid(Size, Size)
	p := DefaultParams()
	parts := extractParts(r, p.AlphaThreshold, p.NoiseMaxPixels)
	require.Len(t, parts, 1)

	o := tallyPart(parts[0], g)
	require.Equal(t, 3, o.span)
	assert.NotEmpty(t, rejectReason(o, g, ModeIcon, p))
	assert.Empty(t, rejectReason(o, g, ModeGeneric, p))
}

func TestRejectGenericSpan(t *testing.T) {
	g := NewGrid(Size, Size)
	p := DefaultParams()

	huge := tallyPart(partFromRect(geometry.NewRectInt(300, 300, 400, 400)), g)
	require.Equal(t, 9, huge.span)
	assert.NotEmpty(t, rejectReason(huge, g, ModeGeneric, p))
}

func TestRejectSilhouetteSize(t *testing.T) {
	g := NewGrid(Size, Size)
	p := DefaultParams()

	tooNarrow := tallyPart(partFromRect(geometry.NewRectInt(60, 60, 100, 221)), g)
	assert.Contains(t, rejectReason(tooNarrow, g, ModeSilhouette, p), "outside")

	good := tallyPart(partFromRect(geometry.NewRectInt(60, 60, 221, 221)), g)
	assert.Empty(t, rejectReason(good, g, ModeSilhouette, p))
}

func TestRejectSilhouetteSnap(t *testing.T) {
	g := NewGrid(Size, Size)
	p := DefaultParams()

	// Same size as an accepted silhouette, but floating 100px from the
	// nearest vertical grid line.
	adrift := tallyPart(partFromRect(geometry.NewRectInt(100, 60, 221, 221)), g)
	assert.Contains(t, rejectReason(adrift, g, ModeSilhouette, p), "vertical")
}

func TestResolveOwnershipGroupsByCell(t *testing.T) {
	r := raster.New(Size, Size)
	fillRect(r, geometry.NewRectInt(50, 50, 30, 30), opaque)
	fillRect(r, geometry.NewRectInt(150, 150, 30, 30), opaque)
	fillRect(r, geometry.NewRectInt(500, 50, 30, 30), opaque)

	g := NewGrid(Size, Size)
	p := DefaultParams()
	parts := extractParts(r, p.AlphaThreshold, p.NoiseMaxPixels)
	require.Len(t, parts, 3)

	cells := resolveOwnership(parts, g, ModeIcon, p)
	assert.Len(t, cells[0], 2)
	assert.Len(t, cells[1], 1)
	for idx := 2; idx < cellCount; idx++ {
		assert.Empty(t, cells[idx])
	}
}

func TestResolveOwnershipDropsRejected(t *testing.T) {
	r := raster.New(Size, Size)
	fillRect(r, geometry.NewRectInt(300, 0, 400, 11), opaque) // spans 3 columns

	g := NewGrid(Size, Size)
	p := DefaultParams()
	parts := extractParts(r, p.AlphaThreshold, p.NoiseMaxPixels)

	for _, cell := range resolveOwnership(parts, g, ModeIcon, p) {
		assert.Empty(t, cell)
	}
}
