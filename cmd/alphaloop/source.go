package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gogpu/alphaloop"
	"github.com/gogpu/alphaloop/internal/gamma"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

// captureExts are the file types a capture directory may hold.
var captureExts = []string{".png", ".tif", ".tiff", ".bmp", ".webp", ".jpg", ".jpeg", pixbuf.RawExt}

var errNoFrames = errors.New("no capture frames found")

// dirSource reads pre-rendered captures laid out as
// <root>/<background>/<frame file>, one subdirectory per background.
// Frame files are taken in lexical order.
//
// When srgb is set the files are gamma encoded and are linearised on load.
type dirSource struct {
	frames   map[alphaloop.Background][]string
	maskPath string
	srgb     bool
}

func newDirSource(root, maskPath string, srgb bool, backgrounds []alphaloop.Background) (*dirSource, error) {
	s := &dirSource{
		frames:   make(map[alphaloop.Background][]string, len(backgrounds)),
		maskPath: maskPath,
		srgb:     srgb,
	}
	for _, bg := range backgrounds {
		files, err := listFrames(filepath.Join(root, bg.String()))
		if err != nil {
			return nil, err
		}
		s.frames[bg] = files
	}
	if s.maskPath == "" {
		if p, ok := findMask(root); ok {
			s.maskPath = p
		}
	}
	return s, nil
}

func listFrames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !slices.Contains(captureExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, errNoFrames)
	}
	slices.Sort(files)
	return files, nil
}

func findMask(root string) (string, bool) {
	for _, ext := range captureExts {
		p := filepath.Join(root, "mask"+ext)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}

// Frames returns the number of complete frames available.
func (s *dirSource) Frames() int {
	n := -1
	for _, files := range s.frames {
		if n < 0 || len(files) < n {
			n = len(files)
		}
	}
	return max(n, 0)
}

func (s *dirSource) Capture(ctx context.Context, frame int) (alphaloop.CaptureSet, error) {
	var set alphaloop.CaptureSet
	for bg, files := range s.frames {
		if err := ctx.Err(); err != nil {
			return set, err
		}
		if frame >= len(files) {
			return set, fmt.Errorf("%v frame %d: %w", bg, frame, errNoFrames)
		}
		b, err := s.load(files[frame])
		if err != nil {
			return set, err
		}
		set.Set(bg, b)
	}
	return set, nil
}

func (s *dirSource) Mask(context.Context) (*alphaloop.PixelBuffer, error) {
	if s.maskPath == "" {
		return nil, errors.New("no mask file: pass --mask or add mask.png to the input directory")
	}
	return pixbuf.Load(s.maskPath)
}

func (s *dirSource) load(path string) (*pixbuf.Buffer, error) {
	b, err := pixbuf.Load(path)
	if err != nil {
		return nil, err
	}
	if s.srgb && !strings.EqualFold(filepath.Ext(path), pixbuf.RawExt) {
		b.SetSpace(alphaloop.ColorSpaceSRGB)
		if err := gamma.GammaToLinearInto(nil, b, b, 0); err != nil {
			return nil, err
		}
	}
	return b, nil
}
