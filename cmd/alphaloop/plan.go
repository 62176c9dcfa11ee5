package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	flags := newConfigFlags()
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print how many frames to capture and export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.config()
			if err != nil {
				return err
			}
			plan, err := cfg.Plan()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "capture frames:    %d\n", plan.TotalFrames)
			fmt.Fprintf(out, "output frames:     %d\n", plan.OutputFrames)
			if plan.Loop {
				fmt.Fprintf(out, "transition frames: %d (%v, max %d)\n", plan.TransitionFrames, cfg.Loop, cfg.MaxTransitionFrames())
			} else {
				fmt.Fprintln(out, "loop:              off")
			}
			return nil
		},
	}
	flags.register(cmd.Flags())
	return cmd
}
