// Package alphaloop turns multi-background renders of a 3D scene into
// transparent, seamlessly looping RGBA frame sequences.
//
// # Overview
//
// A capture collaborator renders every frame several times, each time on a
// different solid background (black and white, optionally pure red, green
// and blue). alphaloop recovers straight colour and alpha from those
// renders, blends the end of the capture into its start so the sequence
// loops, optionally masks and gamma encodes the frames, and hands them in
// presentation order to an exporter.
//
// # Quick Start
//
//	cfg := alphaloop.DefaultConfig()
//	cfg.Loop = alphaloop.TransitionCustom
//
//	p, err := alphaloop.NewPipeline(cfg)
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	report, err := p.Run(ctx, source, exporter)
//
// # Frame Plan
//
// A looping capture records FrameRate*Duration + TransitionFrames frames
// and exports FrameRate*Duration of them. See [Config.Plan].
//
// # Pixels
//
// Frames are [PixelBuffer] values: row-major float32 RGBA with straight
// (non-premultiplied) alpha. Every kernel is a parallel map over the pixel
// index range and produces identical results for any worker count.
//
// # Logging
//
// alphaloop is silent by default. Use [SetLogger] to route its log/slog
// output to a handler.
package alphaloop
