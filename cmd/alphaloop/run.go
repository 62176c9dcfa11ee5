package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/alphaloop"
	"github.com/gogpu/alphaloop/internal/pixbuf"
)

type runOptions struct {
	input    string
	mask     string
	srgb     bool
	output   string
	name     string
	digits   int
	override bool
	depth    int
	raw      bool
	apng     bool
}

func newRunCmd() *cobra.Command {
	flags := newConfigFlags()
	opts := runOptions{output: "alphaloop-out", digits: 3, override: true, depth: 8}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Process a capture directory into a PNG sequence",
		Long: `Process reads <input>/<background>/ frame files (black and white, plus red,
green and blue with --rgb), recovers alpha, assembles the loop and writes
<output>/<name><frame>.png.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			return runPipeline(cmd, cfg, opts)
		},
	}

	fs := cmd.Flags()
	flags.register(fs)
	fs.StringVarP(&opts.input, "input", "i", "", "capture directory")
	fs.StringVar(&opts.mask, "mask", "", "mask capture (default <input>/mask.*)")
	fs.BoolVar(&opts.srgb, "input-srgb", false, "captures are gamma encoded")
	fs.StringVarP(&opts.output, "output", "o", opts.output, "output folder")
	fs.StringVar(&opts.name, "name", "", "file name prefix")
	fs.IntVar(&opts.digits, "digits", opts.digits, "zero padded frame number width")
	fs.BoolVar(&opts.override, "override", opts.override, "replace the output folder instead of numbering a new one")
	fs.IntVar(&opts.depth, "depth", opts.depth, "PNG bits per channel: 8 or 16")
	fs.BoolVar(&opts.raw, "raw", false, "also write lossless "+pixbuf.RawExt+" frames")
	fs.BoolVar(&opts.apng, "apng", false, "also write an animated PNG preview of the loop")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runPipeline(cmd *cobra.Command, cfg alphaloop.Config, opts runOptions) error {
	depth := pixbuf.Depth(opts.depth)
	if depth != pixbuf.Depth8 && depth != pixbuf.Depth16 {
		return fmt.Errorf("--depth: %w: %d", pixbuf.ErrUnsupportedDepth, opts.depth)
	}
	if opts.digits < 1 || opts.digits > 9 {
		return fmt.Errorf("--digits must be in [1, 9], got %d", opts.digits)
	}

	src, err := newDirSource(opts.input, opts.mask, opts.srgb, alphaloop.Backgrounds(cfg))
	if err != nil {
		return err
	}
	p, err := alphaloop.NewPipeline(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = p.Close() }()

	plan := p.Plan()
	if n := src.Frames(); n < plan.TotalFrames {
		return fmt.Errorf("%s holds %d frames, the plan needs %d", opts.input, n, plan.TotalFrames)
	}

	dir, err := prepareFolder(opts.output, opts.override)
	if err != nil {
		return err
	}
	dst := multiExporter{&fileExporter{
		dir:    dir,
		name:   opts.name,
		digits: opts.digits,
		depth:  depth,
		raw:    opts.raw,
	}}
	if opts.apng {
		dst = append(dst, &apngExporter{
			path: filepath.Join(dir, opts.name+"preview.png"),
			fps:  cfg.FrameRate,
		})
	}

	report, err := p.Run(cmd.Context(), src, dst)
	if err != nil {
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "wrote %d frames to %s in %v\n", report.Frames, dir, report.Elapsed.Round(time.Millisecond))
	if report.Plan.Loop {
		fmt.Fprintf(out, "loop: %d transition frames, seam error %.4f\n", report.Plan.TransitionFrames, report.SeamError)
	}
	return nil
}
