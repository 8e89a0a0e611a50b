// Package matte removes a near-uniform background from generated
// illustrations, turning opaque generator output into the transparent
// rasters the atlas engine expects. The background color is detected from a
// sampling ring just inside the image border, then every border-connected
// pixel within an adaptive color tolerance of it is keyed out.
package matte

import (
	"fmt"
	"image"
	"image/color"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
	"gonum.org/v1/gonum/stat"

	"github.com/talkol/me-gotchi-atlas/internal/raster"
	"github.com/talkol/me-gotchi-atlas/pkg/geometry"
)

// Mode selects the background color detector.
type Mode int

const (
	// ModeDominant picks the dominant color of the border ring. Fully
	// deterministic; the default.
	ModeDominant Mode = iota
	// ModeCluster k-means-clusters the ring samples and takes the largest
	// cluster's center. More robust against gradient backgrounds, but the
	// cluster seeding is randomized.
	ModeCluster
)

// Params controls background detection and keying.
type Params struct {
	// Mode selects the color detector.
	Mode Mode

	// BorderInset is how far inside the image edge the sampling ring sits,
	// in pixels. Skips the generator's occasional one or two pixel edge
	// artifacts.
	BorderInset int

	// MinTolerance and MaxTolerance clamp the adaptive keying tolerance,
	// expressed as a CIE Lab distance on colors scaled to [0,1].
	MinTolerance float64
	MaxTolerance float64
}

// DefaultParams returns keying parameters tuned for generator output.
func DefaultParams() Params {
	return Params{
		Mode:         ModeDominant,
		BorderInset:  12,
		MinTolerance: 0.08,
		MaxTolerance: 0.25,
	}
}

// Key detects the background color of r and erases it in place: every pixel
// reachable from the image border through colors within tolerance of the
// background is cleared on all four channels. Interior regions that happen
// to match the background color survive. Returns the detected color.
func Key(r *raster.Raster, p Params) (color.NRGBA, error) {
	samples := borderSamples(r, p.BorderInset)
	if len(samples) == 0 {
		return color.NRGBA{}, fmt.Errorf("matte: raster too small for border inset %d", p.BorderInset)
	}

	bg, err := detectBackground(samples, p.Mode)
	if err != nil {
		return color.NRGBA{}, err
	}

	tol := adaptiveTolerance(samples, bg, p)
	keyBorderConnected(r, bg, tol)
	return bg, nil
}

// borderSamples collects the pixels of the one-pixel ring inset pixels
// inside the raster edge.
func borderSamples(r *raster.Raster, inset int) []color.NRGBA {
	w, h := r.Width(), r.Height()
	x0, y0 := inset, inset
	x1, y1 := w-1-inset, h-1-inset
	if x1 <= x0 || y1 <= y0 {
		return nil
	}

	var samples []color.NRGBA
	for x := x0; x <= x1; x++ {
		samples = append(samples, r.At(x, y0), r.At(x, y1))
	}
	for y := y0 + 1; y < y1; y++ {
		samples = append(samples, r.At(x0, y), r.At(x1, y))
	}
	return samples
}

func detectBackground(samples []color.NRGBA, mode Mode) (color.NRGBA, error) {
	switch mode {
	case ModeDominant:
		return dominantOf(samples), nil
	case ModeCluster:
		return clusterOf(samples)
	}
	return color.NRGBA{}, fmt.Errorf("matte: unrecognized detector mode %d", int(mode))
}

// dominantOf runs dominant color extraction over the ring samples packed
// into a single-row image.
func dominantOf(samples []color.NRGBA) color.NRGBA {
	strip := image.NewNRGBA(image.Rect(0, 0, len(samples), 1))
	for i, s := range samples {
		strip.SetNRGBA(i, 0, s)
	}
	c := dominantcolor.Find(strip)
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// clusterOf partitions the ring samples into three k-means clusters and
// returns the center of the most populated one.
func clusterOf(samples []color.NRGBA) (color.NRGBA, error) {
	obs := make(clusters.Observations, len(samples))
	for i, s := range samples {
		obs[i] = clusters.Coordinates{
			float64(s.R) / 255,
			float64(s.G) / 255,
			float64(s.B) / 255,
		}
	}

	km := kmeans.New()
	cls, err := km.Partition(obs, 3)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("matte: cluster background: %w", err)
	}

	largest := cls[0]
	for _, c := range cls[1:] {
		if len(c.Observations) > len(largest.Observations) {
			largest = c
		}
	}
	center := largest.Center
	return color.NRGBA{
		R: uint8(center[0]*255 + 0.5),
		G: uint8(center[1]*255 + 0.5),
		B: uint8(center[2]*255 + 0.5),
		A: 255,
	}, nil
}

// adaptiveTolerance derives the keying tolerance from the spread of the ring
// samples around the detected background: mean distance plus two standard
// deviations, clamped to the configured range. A flat background keys
// tightly; a noisy one gets slack.
func adaptiveTolerance(samples []color.NRGBA, bg color.NRGBA, p Params) float64 {
	ref := toColorful(bg)
	dists := make([]float64, len(samples))
	for i, s := range samples {
		dists[i] = ref.DistanceLab(toColorful(s))
	}

	tol := stat.Mean(dists, nil) + 2*stat.StdDev(dists, nil)
	if tol < p.MinTolerance {
		tol = p.MinTolerance
	}
	if tol > p.MaxTolerance {
		tol = p.MaxTolerance
	}
	return tol
}

// keyBorderConnected clears every pixel reachable from the image border
// through background-colored pixels, 4-connected, with an explicit stack.
func keyBorderConnected(r *raster.Raster, bg color.NRGBA, tol float64) {
	w, h := r.Width(), r.Height()
	ref := toColorful(bg)

	isBG := func(x, y int) bool {
		return ref.DistanceLab(toColorful(r.At(x, y))) <= tol
	}

	visited := make([]bool, w*h)
	var stack []geometry.PointInt
	seed := func(x, y int) {
		if !visited[y*w+x] && isBG(x, y) {
			stack = append(stack, geometry.PointInt{X: x, Y: y})
		}
	}
	for x := 0; x < w; x++ {
		seed(x, 0)
		seed(x, h-1)
	}
	for y := 0; y < h; y++ {
		seed(0, y)
		seed(w-1, y)
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
			continue
		}
		idx := p.Y*w + p.X
		if visited[idx] || !isBG(p.X, p.Y) {
			continue
		}
		visited[idx] = true
		r.Clear(p.X, p.Y)

		stack = append(stack,
			geometry.PointInt{X: p.X - 1, Y: p.Y},
			geometry.PointInt{X: p.X + 1, Y: p.Y},
			geometry.PointInt{X: p.X, Y: p.Y - 1},
			geometry.PointInt{X: p.X, Y: p.Y + 1},
		)
	}
}

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}
