package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/gogpu/splat"
	"github.com/gogpu/splat/config"
	"github.com/gogpu/splat/paint"
	"github.com/gogpu/splat/raster"
)

type runOptions struct {
	configPath string
	scriptPath string
	pngPath    string
	seed       uint64
	background string
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay a stroke script and report the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScript(cmd.OutOrStdout(), opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", "", "settings file (defaults when empty)")
	f.StringVar(&opts.scriptPath, "script", "", "stroke script (required)")
	f.StringVar(&opts.pngPath, "png", "", "write a PNG preview")
	f.Uint64Var(&opts.seed, "seed", 1, "random seed for spray jitter and shapes")
	f.StringVar(&opts.background, "background", "#000000", "preview background color")
	_ = cmd.MarkFlagRequired("script")
	return cmd
}

func runScript(out io.Writer, opts runOptions) error {
	settings := config.Default()
	if opts.configPath != "" {
		var err error
		if settings, err = config.Load(opts.configPath); err != nil {
			return err
		}
	}
	script, err := loadScript(opts.scriptPath)
	if err != nil {
		return err
	}
	background, err := splat.ParseHex(opts.background)
	if err != nil {
		return fmt.Errorf("--background: %w", err)
	}

	store := splat.NewStore(settings.StoreOptions()...)
	cam := script.Camera.camera()
	target := raster.NewTarget(cam.Width, cam.Height)
	session, err := paint.NewSession(store, settings,
		paint.WithPicker(target),
		paint.WithRand(rand.New(rand.NewPCG(opts.seed, opts.seed^0x9e3779b97f4a7c15))))
	if err != nil {
		return err
	}

	for i, step := range script.Steps {
		if err := runStep(session, target, cam, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	target.Render(store, cam)
	fmt.Fprintf(out, "splats: %d/%d\n", store.Count(), store.Capacity())
	fmt.Fprintf(out, "history: %d\n", store.HistoryLen())

	if opts.pngPath != "" {
		if err := target.SavePNG(opts.pngPath, background); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", opts.pngPath)
	}
	return nil
}

func runStep(s *paint.Session, target *raster.Target, cam paint.Camera, step Step) error {
	next := s.Settings()
	if step.Tool != "" {
		next.Tool = step.Tool
	}
	if step.Shape != "" {
		next.Shape = step.Shape
	}
	if step.Color != "" {
		next.Color = step.Color
	}
	if err := s.Apply(&next); err != nil {
		return err
	}

	switch {
	case step.Plane != "":
		axis, err := splat.ParseAxis(step.Plane)
		if err != nil {
			return err
		}
		s.SelectPlane(axis)
	case step.Depth:
		s.SelectDepthMode()
	}

	for range step.Undo {
		s.Undo()
	}
	if step.Clear {
		s.Clear()
	}

	for i, p := range step.Points {
		// The picker reads the last rendered frame.
		if target.Stale(s.Store()) {
			target.Render(s.Store(), cam)
		}
		if i == 0 {
			s.PointerDown(p[0], p[1], cam)
		} else {
			s.PointerMove(p[0], p[1], cam)
		}
	}
	s.PointerUp()
	return nil
}
