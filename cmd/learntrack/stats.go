package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/session"
)

func newStatsCommand() *cobra.Command {
	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics over a trailing window",
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := session.NewDBRepository(db).Statistics(cmd.Context(), days)
			if err != nil {
				return fmt.Errorf("repo.Statistics(%d) > %w", days, err)
			}

			fmt.Printf("Last %d day(s):\n", days)
			fmt.Printf("  Study hours:        %.1f\n", stats.StudyHours)
			fmt.Printf("  Sessions:           %d\n", stats.SessionCount)
			fmt.Printf("  Active courses:     %d\n", stats.ActiveCourses)
			fmt.Printf("  Completed modules:  %d\n", stats.CompletedModules)
			fmt.Printf("  Avg session length: %.1f minute(s)\n", stats.AvgSessionMinutes)
			return nil
		},
	}
	statsCmd.Flags().Int("days", 30, "window size in days")
	return statsCmd
}
