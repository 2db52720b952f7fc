package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/cli"
	"github.com/learntrack/learntrack/internal/session"
)

func newSessionCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "session",
		Short: "Track timed study sessions",
	}

	trackCmd := &cobra.Command{
		Use:   "track COURSE_ID",
		Short: "Run an interactive study session for a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			sessionType, _ := flags.GetString("type")
			var moduleID *int64
			if raw, _ := flags.GetInt64("module"); raw != 0 {
				moduleID = &raw
			}

			base := cli.NewInteractiveCLI(nil, nil)
			study := cli.NewStudySessionCLI(base, session.NewDBRepository(db), courseID, moduleID, sessionType)
			return base.Run(cmd.Context(), study)
		},
	}
	trackFlags := trackCmd.Flags()
	trackFlags.String("type", "study", "session type (study, review, practice)")
	trackFlags.Int64("module", 0, "module id the session belongs to")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a recorded session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			s, err := session.NewDBRepository(db).FindByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", id, err)
			}
			fmt.Printf("Session %d, course %d, type %s\n", s.ID, s.CourseID, s.SessionType)
			if s.EndTime.Valid {
				fmt.Printf("Duration: %d minute(s)\n", s.DurationMinutes.Int64)
			} else {
				fmt.Println("Still open")
			}
			if s.Notes != "" {
				fmt.Println(s.Notes)
			}
			return nil
		},
	}

	rootCommand.AddCommand(trackCmd, showCmd)
	return &rootCommand
}
