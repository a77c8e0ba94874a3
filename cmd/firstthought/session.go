package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"firstthought/internal/bootstrap"
	sessiondto "firstthought/internal/modules/session/dto"
	"firstthought/internal/platform/format"
	"firstthought/internal/platform/period"
)

// timeLayouts are accepted by --start/--end, tried in order.
var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02T15:04"}

func parseLocalTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q (use RFC3339 or \"2006-01-02 15:04\")", raw)
}

func newSessionCmd(flags *globalFlags) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Record and manage meditation sessions"}

	session.AddCommand(&cobra.Command{
		Use:   "record <first-thought>",
		Short: "Save the completed timer run with its first-thought tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Record(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if out.DiscardedExample {
					_, _ = fmt.Fprintln(w, "example data cleared")
				}
				_, _ = fmt.Fprintf(w, "recorded %s %s %s\n", out.Session.ID, out.Session.Tag, format.Duration(out.Session.DurationMs))
				for _, u := range out.Achievements.Unlocked {
					_, _ = fmt.Fprintf(w, "unlocked %s (%s)\n", u.Milestone.Label, period.Period(u.Period).Label())
				}
				for _, r := range out.Achievements.NewRecords {
					_, _ = fmt.Fprintf(w, "new record %s (%s)\n", format.Duration(r.DurationMs), period.Period(r.Period).Label())
				}
				return nil
			})
		},
	})

	var startRaw, endRaw, addTag string
	add := &cobra.Command{
		Use:   "add --start <time> --end <time> --tag <word>",
		Short: "Add a past session by hand",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startedAt, err := parseLocalTime(startRaw)
			if err != nil {
				return err
			}
			endedAt, err := parseLocalTime(endRaw)
			if err != nil {
				return err
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Add(cmd.Context(), startedAt, endedAt, addTag)
				if err != nil {
					return err
				}
				if out.DiscardedExample {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "example data cleared")
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s %s %s\n", out.Session.ID, out.Session.Tag, format.Duration(out.Session.DurationMs))
				return nil
			})
		},
	}
	add.Flags().StringVar(&startRaw, "start", "", "start time")
	add.Flags().StringVar(&endRaw, "end", "", "end time")
	add.Flags().StringVar(&addTag, "tag", "", "first-thought tag")
	_ = add.MarkFlagRequired("start")
	_ = add.MarkFlagRequired("end")
	_ = add.MarkFlagRequired("tag")
	session.AddCommand(add)

	session.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List sessions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.List(cmd.Context())
				if err != nil {
					return err
				}
				printSessions(cmd.OutOrStdout(), out)
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "tag <id> <first-thought>",
		Short: "Change the tag of a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				found, err := app.SessionCLI.Retag(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("session %s not found", args[0])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "updated", args[0])
				return nil
			})
		},
	})

	session.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				found, err := app.SessionCLI.Delete(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("session %s not found", args[0])
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted", args[0])
				return nil
			})
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear --yes",
		Short: "Delete every session and tag count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear without --yes")
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				if err := app.SessionCLI.Clear(cmd.Context()); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "cleared")
				return nil
			})
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm")
	session.AddCommand(clearCmd)

	session.AddCommand(&cobra.Command{
		Use:   "suggest [prefix]",
		Short: "Suggest tags for a prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = args[0]
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				items, err := app.SessionCLI.Suggest(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				for _, it := range items {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", it.Tag, it.Count)
				}
				return nil
			})
		},
	})

	var exampleYes bool
	example := &cobra.Command{
		Use:   "example --yes",
		Short: "Replace all sessions with generated example data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !exampleYes {
				return fmt.Errorf("example data replaces every session; pass --yes")
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.LoadExample(cmd.Context())
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d example sessions\n", len(out.Sessions))
				return nil
			})
		},
	}
	example.Flags().BoolVar(&exampleYes, "yes", false, "confirm")
	session.AddCommand(example)

	var days int
	history := &cobra.Command{
		Use:   "history",
		Short: "Daily totals for recent days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				n := days
				if n <= 0 {
					n = app.Config.HistoryDays
				}
				out, err := app.SessionCLI.History(cmd.Context(), n)
				if err != nil {
					return err
				}
				for _, d := range out.Days {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", d.Day.Format("2006-01-02"), d.Count, format.Duration(d.TotalMs))
				}
				return nil
			})
		},
	}
	history.Flags().IntVar(&days, "days", 0, "number of days (defaults to history_days from config)")
	session.AddCommand(history)

	var dir string
	export := &cobra.Command{
		Use:   "export --dir <path>",
		Short: "Write one markdown note per session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.SessionCLI.Export(cmd.Context(), dir)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\n", len(out.Paths), dir)
				return nil
			})
		},
	}
	export.Flags().StringVar(&dir, "dir", "", "output directory")
	_ = export.MarkFlagRequired("dir")
	session.AddCommand(export)

	return session
}

func printSessions(w io.Writer, out sessiondto.ListOutput) {
	if out.IsExampleData {
		_, _ = fmt.Fprintln(w, "# example data")
	}
	if len(out.Sessions) == 0 {
		_, _ = fmt.Fprintln(w, "no sessions")
		return
	}
	for _, s := range out.Sessions {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, format.DateTime(s.StartedAt), format.Duration(s.DurationMs), s.Tag)
	}
}
