package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"firstthought/internal/bootstrap"
	achievementdto "firstthought/internal/modules/achievement/dto"
	statsdto "firstthought/internal/modules/stats/dto"
	"firstthought/internal/platform/format"
	"firstthought/internal/platform/launcher"
	"firstthought/internal/platform/period"
)

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var periodName string
	stats := &cobra.Command{
		Use:   "stats",
		Short: "Totals, averages and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				w := cmd.OutOrStdout()
				if periodName != "" {
					out, err := app.StatsCLI.Period(cmd.Context(), periodName)
					if err != nil {
						return err
					}
					printPeriod(w, out)
					return nil
				}
				out, err := app.StatsCLI.Summary(cmd.Context())
				if err != nil {
					return err
				}
				for _, p := range out.Periods {
					printPeriod(w, p)
				}
				_, _ = fmt.Fprintf(w, "streak: %d days (longest %d)\n", out.Streak.Current, out.Streak.Longest)
				return nil
			})
		},
	}
	stats.Flags().StringVar(&periodName, "period", "", "day|week|month|allTime")

	var days int
	calendar := &cobra.Command{
		Use:   "calendar",
		Short: "Per-day totals computed from the session list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				n := days
				if n <= 0 {
					n = app.Config.HistoryDays
				}
				out, err := app.StatsCLI.Calendar(cmd.Context(), n)
				if err != nil {
					return err
				}
				for _, d := range out {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", d.Day.Format("2006-01-02"), d.Count, format.Duration(d.TotalMs))
				}
				return nil
			})
		},
	}
	calendar.Flags().IntVar(&days, "days", 0, "number of days (defaults to history_days from config)")

	cloud := &cobra.Command{
		Use:   "cloud",
		Short: "Tag cloud weights",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				words, err := app.StatsCLI.Cloud(cmd.Context())
				if err != nil {
					return err
				}
				for _, word := range words {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", word.Tag, word.Count, strings.Repeat("*", word.Weight))
				}
				return nil
			})
		},
	}

	stats.AddCommand(calendar, cloud)
	return stats
}

func printPeriod(w io.Writer, p statsdto.PeriodOutput) {
	_, _ = fmt.Fprintf(w, "%s: %d sessions, total %s, average %s, median %s",
		p.Label, p.Count, format.Duration(p.TotalMs), format.Duration(p.AverageMs), format.Duration(p.MedianMs))
	if p.Best != nil {
		_, _ = fmt.Fprintf(w, ", best %s (%s)", format.Duration(p.Best.DurationMs), p.Best.Tag)
	}
	_, _ = fmt.Fprintln(w)
}

func newAchievementsCmd(flags *globalFlags) *cobra.Command {
	var periodName string
	achievements := &cobra.Command{
		Use:   "achievements",
		Short: "Milestone progress and personal records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			periods := period.All
			if periodName != "" {
				p, err := period.Parse(periodName)
				if err != nil {
					return err
				}
				periods = []period.Period{p}
			}
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				for _, p := range periods {
					out, err := app.AchievementProgress(cmd.Context(), string(p))
					if err != nil {
						return err
					}
					printProgress(cmd.OutOrStdout(), out)
				}
				return nil
			})
		},
	}
	achievements.Flags().StringVar(&periodName, "period", "", "day|week|month|allTime")

	achievements.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every milestone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				catalog, err := app.AchievementCLI.Catalog(cmd.Context())
				if err != nil {
					return err
				}
				for _, m := range catalog {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", m.ID, m.Label)
				}
				return nil
			})
		},
	})
	return achievements
}

func printProgress(w io.Writer, p achievementdto.ProgressOutput) {
	labels := make([]string, 0, len(p.Unlocked))
	for _, m := range p.Unlocked {
		labels = append(labels, m.Label)
	}
	unlocked := "none"
	if len(labels) > 0 {
		unlocked = strings.Join(labels, ", ")
	}
	_, _ = fmt.Fprintf(w, "%s: %s meditated; unlocked: %s\n", p.Label, format.DurationLong(p.TotalMs), unlocked)
	if p.Next != nil {
		_, _ = fmt.Fprintf(w, "  next: %s in %s\n", p.Next.Label, format.DurationLong(max(0, p.Next.ThresholdMs-p.TotalMs)))
	}
	if p.Record != nil {
		_, _ = fmt.Fprintf(w, "  record: %s on %s\n", format.Duration(p.Record.DurationMs), format.DateTime(p.Record.AchievedAt))
	}
}

func newShareCmd(flags *globalFlags) *cobra.Command {
	var open bool
	share := &cobra.Command{Use: "share", Short: "Print text for sharing an achievement"}
	share.PersistentFlags().BoolVar(&open, "open", false, "also open the share link in the browser")

	emit := func(cmd *cobra.Command, app *bootstrap.App, text string) error {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
		if !open || app.Config.ShareURL == "" {
			return nil
		}
		return launcher.OS{}.Open(cmd.Context(), app.Config.ShareURL)
	}

	share.AddCommand(&cobra.Command{
		Use:   "milestone <id>",
		Short: "Share text for an unlocked milestone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				catalog, err := app.AchievementCLI.Catalog(cmd.Context())
				if err != nil {
					return err
				}
				for _, m := range catalog {
					if m.ID == args[0] {
						return emit(cmd, app, format.MilestoneShare(m.Label, app.Config.ShareURL))
					}
				}
				return fmt.Errorf("unknown milestone %q", args[0])
			})
		},
	})

	var periodName string
	record := &cobra.Command{
		Use:   "record",
		Short: "Share text for the personal record of a period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(app *bootstrap.App) error {
				out, err := app.AchievementProgress(cmd.Context(), periodName)
				if err != nil {
					return err
				}
				if out.Record == nil {
					return fmt.Errorf("no personal record for %s yet", strings.ToLower(out.Label))
				}
				return emit(cmd, app, format.RecordShare(out.Record.DurationMs, app.Config.ShareURL))
			})
		},
	}
	record.Flags().StringVar(&periodName, "period", string(period.AllTime), "day|week|month|allTime")
	share.AddCommand(record)
	return share
}
