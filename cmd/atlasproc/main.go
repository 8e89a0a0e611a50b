// Command atlasproc runs the full atlas pipeline on a generated image:
// optional resize and background keying, then part extraction, fusion
// severing, ownership filtering and grid placement, writing the normalized
// atlas as PNG and optionally as a packed texture.
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/talkol/me-gotchi-atlas/internal/atlas"
	"github.com/talkol/me-gotchi-atlas/internal/matte"
	"github.com/talkol/me-gotchi-atlas/internal/raster"
	"github.com/talkol/me-gotchi-atlas/internal/texture"
)

func main() {
	inPath := flag.String("in", "", "Path to generated atlas image (PNG or JPEG)")
	outPath := flag.String("out", "atlas_out.png", "Path for the processed PNG")
	modeName := flag.String("mode", "icon", "Alignment mode: icon, generic or silhouette")
	key := flag.Bool("key", false, "Remove the background before processing")
	keyMode := flag.String("key-mode", "dominant", "Background detector: dominant or cluster")
	resize := flag.Bool("resize", false, "Resize square inputs to 1024x1024 before processing")
	texPath := flag.String("texture", "", "Optional path for a packed texture output")
	texFormat := flag.String("texture-format", "rgba", "Texture pixel format: luminance, alpha, luminance-alpha, rgb or rgba")
	premultiply := flag.Bool("premultiply", false, "Premultiply texture color channels by alpha")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: atlasproc -in <path> [-out atlas_out.png] [-mode icon|generic|silhouette]")
		os.Exit(1)
	}

	mode, err := atlas.ParseMode(*modeName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid mode: %v\n", err)
		os.Exit(1)
	}

	f, err := os.Open(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open image: %v\n", err)
		os.Exit(1)
	}
	img, format, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Loaded %s image: %dx%d pixels\n", format, bounds.Dx(), bounds.Dy())
	fmt.Printf("Mode: %s\n", mode)

	if *resize && bounds.Dx() == bounds.Dy() && bounds.Dx() != atlas.Size {
		fmt.Printf("Resizing %dx%d -> %dx%d\n", bounds.Dx(), bounds.Dy(), atlas.Size, atlas.Size)
		scaled := image.NewNRGBA(image.Rect(0, 0, atlas.Size, atlas.Size))
		xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), img, bounds, xdraw.Over, nil)
		img = scaled
	}

	src := raster.FromImage(img)

	if *key {
		params := matte.DefaultParams()
		if *keyMode == "cluster" {
			params.Mode = matte.ModeCluster
		}
		fmt.Printf("\nKeying background (%s detector)...\n", *keyMode)
		bg, err := matte.Key(src, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Keying failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Background: #%02X%02X%02X\n", bg.R, bg.G, bg.B)
	}

	fmt.Printf("\nProcessing atlas...\n")
	out, err := atlas.Process(src, mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Processing failed: %v\n", err)
		os.Exit(1)
	}

	of, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output: %v\n", err)
		os.Exit(1)
	}
	if err := out.EncodePNG(of); err != nil {
		of.Close()
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	of.Close()
	fmt.Printf("Wrote %s\n", *outPath)

	if *texPath != "" {
		tf, err := texture.ParseFormat(*texFormat)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid texture format: %v\n", err)
			os.Exit(1)
		}
		var flags uint32
		if *premultiply {
			flags |= texture.FlagPremultiplied
		}
		xf, err := os.Create(*texPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create texture: %v\n", err)
			os.Exit(1)
		}
		if err := texture.Encode(xf, out, tf, flags); err != nil {
			xf.Close()
			fmt.Fprintf(os.Stderr, "Failed to encode texture: %v\n", err)
			os.Exit(1)
		}
		xf.Close()
		fmt.Printf("Wrote %s (%s)\n", *texPath, tf)
	}
}
