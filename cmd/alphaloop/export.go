package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/kettek/apng"

	"github.com/gogpu/alphaloop"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// prepareFolder returns the folder frames are written to and creates it.
// With override an existing folder is deleted first; otherwise " 1", " 2",
// ... is appended until the name is free.
func prepareFolder(path string, override bool) (string, error) {
	dir := filepath.Clean(path)
	if override {
		if err := os.RemoveAll(dir); err != nil {
			return "", fmt.Errorf("clear output folder: %w", err)
		}
	} else {
		for n := 1; exists(dir); n++ {
			dir = fmt.Sprintf("%s %d", filepath.Clean(path), n)
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output folder: %w", err)
	}
	return dir, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// frameName returns <name><frame zero padded to digits><ext>.
func frameName(name string, frame, digits int, ext string) string {
	return fmt.Sprintf("%s%0*d%s", name, digits, frame, ext)
}

// fileExporter writes each frame as PNG and optionally as a raw float file.
type fileExporter struct {
	dir    string
	name   string
	digits int
	depth  pixbuf.Depth
	raw    bool
}

func (e *fileExporter) Export(_ context.Context, frame int, buf *alphaloop.PixelBuffer) error {
	base := filepath.Join(e.dir, frameName(e.name, frame, e.digits, ""))
	if err := buf.SavePNG(base+".png", e.depth); err != nil {
		return err
	}
	if e.raw {
		return buf.SaveRaw(base + pixbuf.RawExt)
	}
	return nil
}

// apngExporter collects 8-bit copies of the frames and writes an animated
// PNG preview of the loop on Close.
type apngExporter struct {
	path   string
	fps    int
	frames []image.Image
}

func (e *apngExporter) Export(_ context.Context, frame int, buf *alphaloop.PixelBuffer) error {
	if frame != len(e.frames) {
		return fmt.Errorf("apng: frame %d out of order", frame)
	}
	e.frames = append(e.frames, buf.ToNRGBA())
	return nil
}

func (e *apngExporter) Close() error {
	if len(e.frames) == 0 {
		return nil
	}
	a := apng.APNG{Frames: make([]apng.Frame, len(e.frames))}
	for i, img := range e.frames {
		a.Frames[i] = apng.Frame{
			Image:            img,
			DelayNumerator:   1,
			DelayDenominator: uint16(e.fps),
		}
	}

	f, err := os.Create(filepath.Clean(e.path))
	if err != nil {
		return fmt.Errorf("apng: %w", err)
	}
	if err := apng.Encode(f, a); err != nil {
		_ = f.Close()
		return fmt.Errorf("apng: encode: %w", err)
	}
	return f.Close()
}

// multiExporter hands every frame to each exporter in turn.
type multiExporter []alphaloop.Exporter

func (m multiExporter) Export(ctx context.Context, frame int, buf *alphaloop.PixelBuffer) error {
	for _, e := range m {
		if err := e.Export(ctx, frame, buf); err != nil {
			return err
		}
	}
	return nil
}

func (m multiExporter) Close() error {
	var errs []error
	for _, e := range m {
		if c, ok := e.(interface{ Close() error }); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
