// Package texture reads and writes the engine's flat texture container, a
// minimal little-endian format for shipping processed atlases to the
// runtime without a PNG decoder: a fixed 20-byte header followed by raw
// interleaved pixel data.
package texture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/talkol/me-gotchi-atlas/internal/raster"
)

// Magic identifies a texture stream.
var Magic = [4]byte{'M', 'G', 'T', 'X'}

// ErrMagic indicates a stream that does not start with the texture magic.
var ErrMagic = errors.New("texture: bad magic")

// ErrFormat indicates a format code outside the known enumeration.
var ErrFormat = errors.New("texture: unknown pixel format")

// FlagPremultiplied marks color channels stored premultiplied by alpha.
const FlagPremultiplied uint32 = 1 << 0

// Format is the pixel layout of the payload.
type Format uint32

const (
	FormatLuminance Format = iota
	FormatAlpha
	FormatLuminanceAlpha
	FormatRGB
	FormatRGBA
)

// Bpp returns the payload bytes per pixel.
func (f Format) Bpp() int {
	switch f {
	case FormatLuminance, FormatAlpha:
		return 1
	case FormatLuminanceAlpha:
		return 2
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case FormatLuminance:
		return "luminance"
	case FormatAlpha:
		return "alpha"
	case FormatLuminanceAlpha:
		return "luminance-alpha"
	case FormatRGB:
		return "rgb"
	case FormatRGBA:
		return "rgba"
	}
	return "unknown"
}

// ParseFormat converts a format name to a Format.
func ParseFormat(s string) (Format, error) {
	for _, f := range []Format{FormatLuminance, FormatAlpha, FormatLuminanceAlpha, FormatRGB, FormatRGBA} {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrFormat, s)
}

// Header is the fixed-size stream prefix, after the magic.
type Header struct {
	Width  uint32
	Height uint32
	Flags  uint32
	Format Format
}

// luminance converts one RGB triple with the standard ITU-R 601 weights.
func luminance(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 1<<15) >> 16)
}

// premultiply scales a color channel by alpha.
func premultiply(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

// Encode writes r to w in the given format. With FlagPremultiplied set, the
// color channels are multiplied by alpha on the way out; the source raster
// always holds straight alpha.
func Encode(w io.Writer, r *raster.Raster, format Format, flags uint32) error {
	bpp := format.Bpp()
	if bpp == 0 {
		return fmt.Errorf("%w: %d", ErrFormat, uint32(format))
	}

	if _, err := w.Write(Magic[:]); err != nil {
		return fmt.Errorf("texture: write magic: %w", err)
	}
	hdr := Header{
		Width:  uint32(r.Width()),
		Height: uint32(r.Height()),
		Flags:  flags,
		Format: format,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return fmt.Errorf("texture: write header: %w", err)
	}

	pre := flags&FlagPremultiplied != 0
	src := r.Pix()
	out := make([]uint8, r.Width()*r.Height()*bpp)
	for i, o := 0, 0; i < len(src); i, o = i+raster.Channels, o+bpp {
		cr, cg, cb, ca := src[i], src[i+1], src[i+2], src[i+3]
		if pre {
			cr = premultiply(cr, ca)
			cg = premultiply(cg, ca)
			cb = premultiply(cb, ca)
		}
		switch format {
		case FormatLuminance:
			out[o] = luminance(cr, cg, cb)
		case FormatAlpha:
			out[o] = ca
		case FormatLuminanceAlpha:
			out[o] = luminance(cr, cg, cb)
			out[o+1] = ca
		case FormatRGB:
			out[o] = cr
			out[o+1] = cg
			out[o+2] = cb
		case FormatRGBA:
			out[o] = cr
			out[o+1] = cg
			out[o+2] = cb
			out[o+3] = ca
		}
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("texture: write payload: %w", err)
	}
	return nil
}

// Decode reads a texture stream back into an RGBA raster. Single-channel
// formats expand to gray or alpha-only pixels; formats without an alpha
// channel decode fully opaque. Premultiplied payloads are returned as-is,
// with the flag preserved in the header for the caller to act on.
func Decode(rd io.Reader) (*raster.Raster, Header, error) {
	var magic [4]byte
	if _, err := io.ReadFull(rd, magic[:]); err != nil {
		return nil, Header{}, fmt.Errorf("texture: read magic: %w", err)
	}
	if magic != Magic {
		return nil, Header{}, fmt.Errorf("%w: % x", ErrMagic, magic[:])
	}

	var hdr Header
	if err := binary.Read(rd, binary.LittleEndian, &hdr); err != nil {
		return nil, Header{}, fmt.Errorf("texture: read header: %w", err)
	}
	bpp := hdr.Format.Bpp()
	if bpp == 0 {
		return nil, Header{}, fmt.Errorf("%w: %d", ErrFormat, uint32(hdr.Format))
	}

	w, h := int(hdr.Width), int(hdr.Height)
	payload := make([]uint8, w*h*bpp)
	if _, err := io.ReadFull(rd, payload); err != nil {
		return nil, Header{}, fmt.Errorf("texture: read payload: %w", err)
	}

	r := raster.New(w, h)
	dst := r.Pix()
	for i, o := 0, 0; o < len(payload); i, o = i+raster.Channels, o+bpp {
		switch hdr.Format {
		case FormatLuminance:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = payload[o], payload[o], payload[o], 255
		case FormatAlpha:
			dst[i+3] = payload[o]
		case FormatLuminanceAlpha:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = payload[o], payload[o], payload[o], payload[o+1]
		case FormatRGB:
			dst[i], dst[i+1], dst[i+2], dst[i+3] = payload[o], payload[o+1], payload[o+2], 255
		case FormatRGBA:
			copy(dst[i:i+4], payload[o:o+4])
		}
	}
	return r, hdr, nil
}
