// Command atlasinspect reports what the atlas engine sees in an input image
// without producing one: every extracted part with its bounds, per-cell
// pixel tallies, owner cell and rejection verdict.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/talkol/me-gotchi-atlas/internal/atlas"
	"github.com/talkol/me-gotchi-atlas/internal/raster"
)

func main() {
	inPath := flag.String("in", "", "Path to atlas image (PNG or JPEG)")
	modeName := flag.String("mode", "icon", "Alignment mode: icon, generic or silhouette")
	asJSON := flag.Bool("json", false, "Emit the report as JSON")
	flag.Parse()

	if *inPath == "" {
		fmt.Println("Usage: atlasinspect -in <path> [-mode icon|generic|silhouette] [-json]")
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
	img, _, err := image.Decode(f)
	f.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to decode image: %v\n", err)
		os.Exit(1)
	}

	rep, err := atlas.Analyze(raster.FromImage(img), mode, atlas.DefaultParams())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Analysis failed: %v\n", err)
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Printf("Mode: %s\n", rep.Mode)
	fmt.Printf("Parts: %d\n\n", len(rep.Parts))
	fmt.Printf("%-4s %-22s %8s %5s %6s %s\n", "#", "Bounds", "Pixels", "Span", "Owner", "Verdict")
	for i, p := range rep.Parts {
		bounds := fmt.Sprintf("(%d,%d) %dx%d", p.Bounds[0], p.Bounds[1], p.Bounds[2], p.Bounds[3])
		verdict := "ok"
		owner := fmt.Sprintf("%d", p.Owner)
		if p.Rejected != "" {
			verdict = "rejected: " + p.Rejected
			owner = "-"
		}
		fmt.Printf("%-4d %-22s %8d %5d %6s %s\n", i, bounds, p.Pixels, p.Span, owner, verdict)
	}
}
