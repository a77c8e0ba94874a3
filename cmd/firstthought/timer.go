package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"firstthought/internal/bootstrap"
	timerdto "firstthought/internal/modules/timer/dto"
	"firstthought/internal/platform/format"
)

func newTimerCmd(flags *globalFlags) *cobra.Command {
	timer := &cobra.Command{Use: "timer", Short: "Control the meditation timer"}

	step := func(use, short string, call func(app *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error)) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, flags, func(app *bootstrap.App) error {
					state, err := call(app, cmd.Context())
					if err != nil {
						return err
					}
					printState(cmd.OutOrStdout(), state)
					return nil
				})
			},
		}
	}

	timer.AddCommand(
		step("start", "Start (or restart) the timer", func(app *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
			return app.TimerCLI.Start(ctx)
		}),
		step("pause", "Mark the end of the run without completing it", func(app *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
			return app.TimerCLI.Pause(ctx)
		}),
		step("complete", "Finish the run and fix its duration", func(app *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
			return app.TimerCLI.Complete(ctx)
		}),
		step("reset", "Discard the current run", func(app *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
			return app.TimerCLI.Reset(ctx)
		}),
		step("status", "Show the timer state", func(app *bootstrap.App, ctx context.Context) (timerdto.StateOutput, error) {
			return app.TimerCLI.Status(ctx)
		}),
	)

	visibility := &cobra.Command{
		Use:       "visibility <foreground|background>",
		Short:     "Report that the app moved to the foreground or background",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"foreground", "background"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var foreground bool
			switch args[0] {
			case "foreground":
				foreground = true
			case "background":
			default:
				return fmt.Errorf("visibility must be foreground or background, got %q", args[0])
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.TimerCLI.Visibility(cmd.Context(), foreground)
				if err != nil {
					return err
				}
				printState(cmd.OutOrStdout(), out.State)
				if out.Completed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "completed on return; record it with `firstthought session record <tag>`")
				}
				return nil
			})
		},
	}
	timer.AddCommand(visibility)
	return timer
}

func printState(w io.Writer, s timerdto.StateOutput) {
	switch s.Status {
	case "running":
		if s.StartedAt == nil {
			_, _ = fmt.Fprintln(w, "running")
			return
		}
		_, _ = fmt.Fprintf(w, "running %s (since %s)", format.Duration(s.ElapsedMs), format.DateTime(*s.StartedAt))
		if s.PausedAt != nil {
			_, _ = fmt.Fprintf(w, ", paused at %s", format.DateTime(*s.PausedAt))
		}
		_, _ = fmt.Fprintln(w)
	case "completed":
		_, _ = fmt.Fprintf(w, "completed %s\n", format.Duration(s.DurationMs))
	default:
		_, _ = fmt.Fprintln(w, s.Status)
	}
}
