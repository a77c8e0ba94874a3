package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"firstthought/internal/bootstrap"
	"firstthought/internal/platform/config"
	"firstthought/internal/platform/logger"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "firstthought",
		Short:         "Meditation timer that records your first thought",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", config.DefaultDataDir(), "directory holding sessions, achievements and timer state")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error (overrides config.yaml)")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newTimerCmd(flags))
	root.AddCommand(newSessionCmd(flags))
	root.AddCommand(newStatsCmd(flags))
	root.AddCommand(newAchievementsCmd(flags))
	root.AddCommand(newShareCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	return root
}

// loadApp wires the application. Logs go to w; the TUI passes the log file
// so records never tear the alt screen.
func loadApp(flags *globalFlags, w io.Writer) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.dataDir)
	if err != nil {
		return nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	log := logger.New(logger.Config{
		Writer: w,
		Format: cfg.LogFormat,
		Level:  logger.ParseLevel(cfg.LogLevel),
	})
	return bootstrap.New(cfg, log)
}

// withApp runs fn against a CLI-configured app and closes it afterwards.
func withApp(cmd *cobra.Command, flags *globalFlags, fn func(app *bootstrap.App) error) error {
	app, err := loadApp(flags, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(app)
}

func newTUICmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen meditation timer",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(flags.dataDir)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("create data dir: %w", err)
			}
			logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer func() { _ = logFile.Close() }()

			app, err := loadApp(flags, logFile)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			app.Logger.Info("tui started", slog.String("data_dir", cfg.DataDir))
			return bootstrap.RunTUI(app)
		},
	}
}

func newReindexCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the history database from stored sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Reindex(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reindex completed: %d sessions\n", out.Sessions)
				return nil
			})
		},
	}
}
