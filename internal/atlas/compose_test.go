package atlas

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkol/me-gotchi-atlas/internal/raster"
	"github.com/talkol/me-gotchi-atlas/pkg/geometry"
)

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 2, floorDiv(4, 2))
	assert.Equal(t, 0, floorDiv(1, 2))
	assert.Equal(t, -1, floorDiv(-1, 2))
	assert.Equal(t, -2, floorDiv(-3, 2))
	assert.Equal(t, -171, floorDiv(-341, 2))
}

func TestAlignmentFor(t *testing.T) {
	assert.Equal(t, alignCenter, alignmentFor(ModeIcon))
	assert.Equal(t, alignCenter, alignmentFor(ModeGeneric))
	assert.Equal(t, alignBottom, alignmentFor(ModeSilhouette))
}

func TestCompositeCentersInCell(t *testing.T) {
	src := raster.New(Size, Size)
	fillRect(src, geometry.NewRectInt(0, 0, 50, 50), opaque)

	out, err := Process(src, ModeIcon)
	require.NoError(t, err)

	parts := extractParts(out, 10, 3)
	require.Len(t, parts, 1)
	// floor((341-50)/2) = 145 on both axes.
	assert.Equal(t, geometry.NewRectInt(145, 145, 50, 50), parts[0].Bounds)
}

func TestCompositeAlreadyCenteredIsIdentity(t *testing.T) {
	src := raster.New(Size, Size)
	// 2x2 block at the exact center of cell (0,0): floor((341-2)/2) = 169.
	fillRect(src, geometry.NewRectInt(169, 169, 2, 2), opaque)

	out, err := Process(src, ModeIcon)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(src.Pix(), out.Pix()))
}

func TestCompositeBottomAligns(t *testing.T) {
	src := raster.New(Size, Size)
	// A valid silhouette in cell (0,1), slightly off its floor.
	fillRect(src, geometry.NewRectInt(60, 400, 221, 221), opaque)

	out, err := Process(src, ModeSilhouette)
	require.NoError(t, err)

	parts := extractParts(out, 10, 3)
	require.Len(t, parts, 1)
	// Horizontally centered, bottom edge on y=682.
	assert.Equal(t, geometry.NewRectInt(60, 461, 221, 221), parts[0].Bounds)
}

func TestCompositeBottomOverflowsUpward(t *testing.T) {
	src := raster.New(Size, Size)
	// Taller than the 341px cell; the top must poke into the row above.
	fillRect(src, geometry.NewRectInt(45, 300, 250, 380), opaque)

	out, err := Process(src, ModeSilhouette)
	require.NoError(t, err)

	parts := extractParts(out, 10, 3)
	require.Len(t, parts, 1)
	assert.Equal(t, geometry.NewRectInt(45, 302, 250, 380), parts[0].Bounds)
}

func TestCompositeDropsOutOfBoundsPixels(t *testing.T) {
	src := raster.New(Size, Size)
	// Two cells wide: owned by cell 0, centering pushes it past x=0.
	fillRect(src, geometry.NewRectInt(0, 0, 682, 10), opaque)

	out, err := Process(src, ModeIcon)
	require.NoError(t, err)

	parts := extractParts(out, 10, 3)
	require.Len(t, parts, 1)
	// floor((341-682)/2) = -171 shifts the strip left; the first 171
	// columns fall off the raster and vanish.
	assert.Equal(t, geometry.NewRectInt(0, 165, 511, 10), parts[0].Bounds)
	assert.Equal(t, 511*10, parts[0].Size())
}

func TestCompositeMovesCellGroupRigidly(t *testing.T) {
	src := raster.New(Size, Size)
	// Two parts in cell (0,0), 40px apart; the gap must survive placement.
	fillRect(src, geometry.NewRectInt(20, 100, 30, 30), opaque)
	fillRect(src, geometry.NewRectInt(90, 100, 30, 30), opaque)

	out, err := Process(src, ModeIcon)
	require.NoError(t, err)

	parts := extractParts(out, 10, 3)
	require.Len(t, parts, 2)
	// Union bbox is 100x30 at (20,100); centered target is (120,155).
	assert.Equal(t, geometry.NewRectInt(120, 155, 30, 30), parts[0].Bounds)
	assert.Equal(t, geometry.NewRectInt(190, 155, 30, 30), parts[1].Bounds)
}

func TestCompositeCopiesChannelsVerbatim(t *testing.T) {
	src := raster.New(Size, Size)
	fillRect(src, geometry.NewRectInt(0, 0, 50, 50), opaque)

	out, err := Process(src, ModeIcon)
	require.NoError(t, err)
	assert.Equal(t, opaque, out.At(145, 145))
	assert.Equal(t, opaque, out.At(194, 194))
}
