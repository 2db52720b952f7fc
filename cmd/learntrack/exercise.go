package main

import (
	"database/sql"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/exercise"
)

func newExerciseCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "exercise",
		Short: "Manage practice exercises",
	}

	addCmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			description, _ := flags.GetString("description")
			category, _ := flags.GetString("category")
			difficulty, _ := flags.GetInt("difficulty")
			exerciseType, _ := flags.GetString("type")
			estimated, _ := flags.GetInt("estimated")
			courseID, _ := flags.GetInt64("course")
			concepts, _ := flags.GetStringSlice("concepts")

			e := &exercise.Exercise{
				Title:         args[0],
				Description:   description,
				Category:      category,
				Difficulty:    difficulty,
				ExerciseType:  exerciseType,
				EstimatedTime: estimated,
				Concepts:      concepts,
			}
			if courseID != 0 {
				e.CourseID = sql.NullInt64{Int64: courseID, Valid: true}
			}
			if err := exercise.NewDBRepository(db).Create(cmd.Context(), e); err != nil {
				return fmt.Errorf("repo.Create(%s) > %w", e.Title, err)
			}
			fmt.Printf("Created exercise %d: %s\n", e.ID, e.Title)
			return nil
		},
	}
	addFlags := addCmd.Flags()
	addFlags.String("description", "", "exercise description")
	addFlags.String("category", "", "exercise category")
	addFlags.Int("difficulty", 0, "difficulty from 1 to 5")
	addFlags.String("type", "", "exercise type")
	addFlags.Int("estimated", 0, "estimated minutes")
	addFlags.Int64("course", 0, "course the exercise belongs to")
	addFlags.StringSlice("concepts", nil, "comma-separated concept names")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			status, _ := flags.GetString("status")
			courseID, _ := flags.GetInt64("course")

			exercises, err := exercise.NewDBRepository(db).FindAll(cmd.Context(), status, courseID)
			if err != nil {
				return fmt.Errorf("repo.FindAll(%s) > %w", status, err)
			}
			for _, e := range exercises {
				fmt.Printf("%d\t%s\t%s\t%.0f%%\n", e.ID, e.Title, e.Status, e.Progress)
			}
			return nil
		},
	}
	listFlags := listCmd.Flags()
	listFlags.String("status", "", "filter by status")
	listFlags.Int64("course", 0, "restrict to a course")

	progressCmd := &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Update the progress of an exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			progress, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid progress %q", args[1])
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			update := exercise.ProgressUpdate{Progress: progress}
			if actual, _ := flags.GetInt("actual"); actual != 0 {
				update.ActualTime = &actual
			}
			if status, _ := flags.GetString("status"); status != "" {
				update.Status = &status
			}

			if err := exercise.NewDBRepository(db).UpdateProgress(cmd.Context(), id, update); err != nil {
				return fmt.Errorf("repo.UpdateProgress(%d) > %w", id, err)
			}
			fmt.Printf("Exercise %d progress set to %.0f%%\n", id, progress)
			return nil
		},
	}
	progressFlags := progressCmd.Flags()
	progressFlags.Int("actual", 0, "actual minutes spent")
	progressFlags.String("status", "", "new status (in_progress, completed, abandoned)")

	rootCommand.AddCommand(addCmd, listCmd, progressCmd)
	return &rootCommand
}
