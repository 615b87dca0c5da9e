// Command multicell-export renders a saved network snapshot to PNG, SVG,
// or MP4 without opening the editor.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"multicell/internal/app"
	"multicell/internal/export"
	"multicell/internal/render"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		in    = flag.String("in", "", "snapshot JSON to render (default: a generated network)")
		out   = flag.String("out", "network.png", "output file (.png, .svg, or .mp4)")
		size  = flag.Int("size", 1200, "output width and height in pixels")
		scale = flag.Int("scale", export.DefaultPNGScale, "PNG supersampling factor")
		fps   = flag.Int("fps", export.DefaultFPS, "frame rate for animated export")
	)
	flag.Parse()

	store := app.NewStore()
	if *in != "" {
		data, err := os.ReadFile(*in)
		if err != nil {
			log.Fatalf("read %s: %v", *in, err)
		}
		if !store.ImportJSON(data) {
			log.Fatalf("%s is not a valid snapshot", *in)
		}
	}

	scene := render.Scene{
		Cells:  store.Cells(),
		Config: store.Config(),
		Colors: store.Colors(),
	}

	switch strings.ToLower(filepath.Ext(*out)) {
	case ".png":
		data, err := export.EncodePNG(scene, *size, *size, *scale)
		if err != nil {
			log.Fatal(err)
		}
		if err := os.WriteFile(*out, data, 0o644); err != nil {
			log.Fatal(err)
		}
	case ".svg":
		f, err := os.Create(*out)
		if err != nil {
			log.Fatal(err)
		}
		if err := export.WriteSVG(f, scene, *size, *size); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	case ".mp4":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err := export.CaptureVideo(ctx, scene, *out, export.VideoOptions{
			Width:  *size,
			Height: *size,
			FPS:    *fps,
		})
		if err != nil {
			log.Fatal(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "unsupported output format %q\n", filepath.Ext(*out))
		os.Exit(2)
	}

	log.Printf("wrote %s", *out)
}
