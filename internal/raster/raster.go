// Package raster provides the in-memory RGBA pixel buffer the atlas engine
// operates on, plus conversion to and from Go images and PNG streams.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
)

// Channels is the per-pixel byte count of a Raster. Buffers with more
// channels are accepted at construction; the extra channels are dropped.
const Channels = 4

// ErrChannels indicates a source buffer with fewer than four channels.
var ErrChannels = fmt.Errorf("raster: buffer must carry at least %d channels", Channels)

// Raster is a row-major RGBA pixel buffer, 4 bytes per pixel.
type Raster struct {
	width  int
	height int
	pix    []uint8
}

// New creates a fully transparent raster of the given dimensions.
func New(width, height int) *Raster {
	return &Raster{
		width:  width,
		height: height,
		pix:    make([]uint8, width*height*Channels),
	}
}

// FromBuffer creates a raster from a raw interleaved pixel buffer with the
// given channel count. Channels beyond the first four are dropped; fewer than
// four is rejected.
func FromBuffer(width, height, channels int, data []uint8) (*Raster, error) {
	if channels < Channels {
		return nil, fmt.Errorf("%w: got %d", ErrChannels, channels)
	}
	if len(data) < width*height*channels {
		return nil, fmt.Errorf("raster: buffer too short: %d bytes for %dx%dx%d",
			len(data), width, height, channels)
	}
	r := New(width, height)
	if channels == Channels {
		copy(r.pix, data[:width*height*Channels])
		return r, nil
	}
	for i := 0; i < width*height; i++ {
		copy(r.pix[i*Channels:i*Channels+Channels], data[i*channels:i*channels+Channels])
	}
	return r, nil
}

// FromImage creates a raster from any Go image, converting to
// non-premultiplied RGBA.
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	r := New(w, h)

	// Fast path: NRGBA shares our layout directly.
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < h; y++ {
			row := src.Pix[(y+bounds.Min.Y-src.Rect.Min.Y)*src.Stride+(bounds.Min.X-src.Rect.Min.X)*4:]
			copy(r.pix[y*w*Channels:(y+1)*w*Channels], row[:w*4])
		}
		return r
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := (y*w + x) * Channels
			r.pix[i+0] = c.R
			r.pix[i+1] = c.G
			r.pix[i+2] = c.B
			r.pix[i+3] = c.A
		}
	}
	return r
}

// DecodePNG reads a PNG stream into a raster.
func DecodePNG(rd io.Reader) (*Raster, error) {
	img, err := png.Decode(rd)
	if err != nil {
		return nil, fmt.Errorf("raster: decode png: %w", err)
	}
	return FromImage(img), nil
}

// EncodePNG writes the raster as a PNG stream.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.Image())
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// Pix returns the raw pixel buffer (RGBA, row-major). Callers may mutate it.
func (r *Raster) Pix() []uint8 { return r.pix }

// Offset returns the buffer index of pixel (x, y).
func (r *Raster) Offset(x, y int) int {
	return (y*r.width + x) * Channels
}

// Alpha returns the alpha channel of pixel (x, y).
func (r *Raster) Alpha(x, y int) uint8 {
	return r.pix[(y*r.width+x)*Channels+3]
}

// At returns pixel (x, y) as a non-premultiplied color. Out-of-bounds reads
// return transparent.
func (r *Raster) At(x, y int) color.NRGBA {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return color.NRGBA{}
	}
	i := (y*r.width + x) * Channels
	return color.NRGBA{R: r.pix[i], G: r.pix[i+1], B: r.pix[i+2], A: r.pix[i+3]}
}

// Set writes pixel (x, y). Out-of-bounds writes are dropped.
func (r *Raster) Set(x, y int, c color.NRGBA) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	i := (y*r.width + x) * Channels
	r.pix[i+0] = c.R
	r.pix[i+1] = c.G
	r.pix[i+2] = c.B
	r.pix[i+3] = c.A
}

// Clear zeroes pixel (x, y) on all four channels.
func (r *Raster) Clear(x, y int) {
	i := (y*r.width + x) * Channels
	r.pix[i+0] = 0
	r.pix[i+1] = 0
	r.pix[i+2] = 0
	r.pix[i+3] = 0
}

// Clone returns a deep copy sharing no buffer with the original.
func (r *Raster) Clone() *Raster {
	c := New(r.width, r.height)
	copy(c.pix, r.pix)
	return c
}

// Image converts the raster to a non-premultiplied Go image backed by a copy
// of the pixel buffer.
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	copy(img.Pix, r.pix)
	return img
}
