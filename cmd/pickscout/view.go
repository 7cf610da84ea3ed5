package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/yourusername/pickscout/internal/dashboard"
	"github.com/yourusername/pickscout/internal/datasource"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/pickview"
	"github.com/yourusername/pickscout/internal/profile"
	"github.com/yourusername/pickscout/internal/scheduler"
)

var (
	sportFlag       string
	credibilityFlag string
	unitSizeFlag    float64
	bankrollFlag    float64
	riskFlag        string
	recentDays      int
	watchSchedule   string
)

func init() {
	for _, cmd := range []*cobra.Command{leaderboardCmd, picksCmd, recentCmd, watchCmd} {
		cmd.Flags().Float64Var(&unitSizeFlag, "unit-size", 0, "Dollars per unit (default dashboard.default_unit_size)")
		cmd.Flags().Float64Var(&bankrollFlag, "bankroll", 0, "Derive the unit size from this bankroll")
		cmd.Flags().StringVar(&riskFlag, "risk", string(models.RiskModerate), "Risk tolerance used with --bankroll")
	}
	for _, cmd := range []*cobra.Command{leaderboardCmd, picksCmd, watchCmd} {
		cmd.Flags().StringVar(&sportFlag, "sport", "", "Only show this sport")
		cmd.Flags().StringVar(&credibilityFlag, "credibility", "", "Only show this tier: verified, unverified or suspicious")
	}
	recentCmd.Flags().IntVar(&recentDays, "days", 7, "Look back this many days")
	watchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "Cron expression for refreshes (default dashboard.refresh_schedule)")
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show ranked cappers and their open picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(func(ctx context.Context, board *dashboard.Board, criteria models.FilterCriteria, unit float64) error {
			board.RefreshLeaderboard(ctx, criteria)
			rendered, err := board.Render(unit)
			if err != nil {
				return err
			}
			return dashboard.WriteLeaderboard(cmd.OutOrStdout(), rendered)
		})
	},
}

var picksCmd = &cobra.Command{
	Use:   "picks",
	Short: "Show today's pending picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(func(ctx context.Context, board *dashboard.Board, criteria models.FilterCriteria, unit float64) error {
			board.RefreshToday(ctx, criteria)
			rendered, err := board.Render(unit)
			if err != nil {
				return err
			}
			return dashboard.WriteToday(cmd.OutOrStdout(), rendered)
		})
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show recently graded picks",
	RunE: func(cmd *cobra.Command, args []string) error {
		unit, err := resolveUnitSize()
		if err != nil {
			return err
		}
		projector, err := pickview.NewProjector(unit)
		if err != nil {
			return err
		}

		client, err := datasource.NewClient(cfg.Client, appLog)
		if err != nil {
			return err
		}
		defer client.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		picks, err := client.Source.GetRecentPicks(ctx, recentDays)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("Graded picks, last %d days", recentDays)
		return dashboard.WritePicks(cmd.OutOrStdout(), title, projector.ProjectTodays(picks))
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the dashboard open and refresh it on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withBoard(func(ctx context.Context, board *dashboard.Board, criteria models.FilterCriteria, unit float64) error {
			schedule := watchSchedule
			if schedule == "" {
				schedule = cfg.Dashboard.RefreshSchedule
			}

			var drawMu sync.Mutex
			draw := func() {
				drawMu.Lock()
				defer drawMu.Unlock()
				if err := redraw(cmd.OutOrStdout(), board, unit); err != nil {
					appLog.WithError(err).Warn("Failed to draw dashboard")
				}
			}

			board.Refresh(ctx, criteria)
			draw()

			sched := scheduler.NewScheduler(board, appLog)
			if err := sched.ScheduleRefresh(schedule, criteria, draw); err != nil {
				return err
			}
			if err := sched.Start(); err != nil {
				return err
			}
			appLog.WithField("next_run", sched.GetNextRun()).Debug("Watching")

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan

			return sched.Stop()
		})
	},
}

func redraw(w io.Writer, board *dashboard.Board, unit float64) error {
	rendered, err := board.Render(unit)
	if err != nil {
		return err
	}
	fmt.Fprint(w, "\033[H\033[2J")
	fmt.Fprintf(w, "Updated %s\n\n", time.Now().Format("15:04:05"))
	if err := dashboard.WriteLeaderboard(w, rendered); err != nil {
		return err
	}
	fmt.Fprintln(w)
	return dashboard.WriteToday(w, rendered)
}

// withBoard parses the shared flags and hands fn a board over the API client.
func withBoard(fn func(ctx context.Context, board *dashboard.Board, criteria models.FilterCriteria, unit float64) error) error {
	tier := credibilityFlag
	if tier == "" {
		tier = cfg.Dashboard.DefaultCredibility
	}
	criteria, err := models.NewFilterCriteria(sportFlag, tier)
	if err != nil {
		return err
	}
	unit, err := resolveUnitSize()
	if err != nil {
		return err
	}

	client, err := datasource.NewClient(cfg.Client, appLog)
	if err != nil {
		return err
	}
	defer client.Close()

	return fn(context.Background(), dashboard.NewBoard(client.Source, appLog), criteria, unit)
}

func resolveUnitSize() (float64, error) {
	if bankrollFlag > 0 {
		tolerance, err := models.ParseRiskTolerance(riskFlag)
		if err != nil {
			return 0, err
		}
		return profile.SuggestUnitSize(bankrollFlag, tolerance)
	}
	if unitSizeFlag > 0 {
		return unitSizeFlag, nil
	}
	return cfg.Dashboard.DefaultUnitSize, nil
}
