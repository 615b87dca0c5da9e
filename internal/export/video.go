package export

import (
	"context"
	"fmt"
	"image"
	"os"

	"gocv.io/x/gocv"

	"multicell/internal/render"
)

// videoCodec is the fourcc passed to the OpenCV muxer.
const videoCodec = "mp4v"

// VideoOptions controls an animated export.
type VideoOptions struct {
	Width  int
	Height int
	FPS    int // defaults to DefaultFPS
}

// CaptureVideo renders the connection-draw animation frame by frame and
// muxes it to an MP4 at path. The animation length comes from the scene
// config. A partial file is removed on error or cancellation.
func CaptureVideo(ctx context.Context, scene render.Scene, path string, opts VideoOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("video export: invalid size %dx%d", opts.Width, opts.Height)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	writer, err := gocv.VideoWriterFile(path, videoCodec, float64(fps), opts.Width, opts.Height, true)
	if err != nil {
		return fmt.Errorf("video export: open writer: %w", err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return fmt.Errorf("video export: no encoder for %q", videoCodec)
	}

	for _, progress := range Timeline(scene.Config.AnimationDuration, fps) {
		select {
		case <-ctx.Done():
			writer.Close()
			os.Remove(path)
			return ctx.Err()
		default:
		}

		frame := render.Render(scene, render.Options{
			Width:    opts.Width,
			Height:   opts.Height,
			Progress: progress,
		})
		if err := writeFrame(writer, frame); err != nil {
			writer.Close()
			os.Remove(path)
			return err
		}
	}

	if err := writer.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("video export: close writer: %w", err)
	}
	return nil
}

func writeFrame(writer *gocv.VideoWriter, frame *image.RGBA) error {
	b := frame.Bounds()
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC4, frame.Pix)
	if err != nil {
		return fmt.Errorf("video export: frame to mat: %w", err)
	}
	defer mat.Close()

	bgr := gocv.NewMat()
	defer bgr.Close()
	gocv.CvtColor(mat, &bgr, gocv.ColorRGBAToBGR)

	if err := writer.Write(bgr); err != nil {
		return fmt.Errorf("video export: write frame: %w", err)
	}
	return nil
}
