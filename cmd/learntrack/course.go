package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/course"
)

func newCourseCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "course",
		Short: "Manage courses and their modules",
	}

	createCmd := &cobra.Command{
		Use:   "create TITLE",
		Short: "Create a course",
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
			hours, _ := flags.GetInt("hours")
			priority, _ := flags.GetInt("priority")
			courseTags, _ := flags.GetStringSlice("tags")

			c := &course.Course{
				Title:          args[0],
				Description:    description,
				Category:       category,
				Difficulty:     difficulty,
				EstimatedHours: hours,
				Priority:       priority,
				Tags:           courseTags,
			}
			repo := course.NewDBRepository(db)
			if err := repo.Create(cmd.Context(), c); err != nil {
				return fmt.Errorf("repo.Create(%s) > %w", c.Title, err)
			}
			fmt.Printf("Created course %d: %s\n", c.ID, c.Title)
			return nil
		},
	}
	createFlags := createCmd.Flags()
	createFlags.String("description", "", "course description")
	createFlags.String("category", "", "course category")
	createFlags.Int("difficulty", 1, "difficulty from 1 to 5")
	createFlags.Int("hours", 0, "estimated hours")
	createFlags.Int("priority", 3, "priority from 1 to 5")
	createFlags.StringSlice("tags", nil, "comma-separated tags")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List courses, most recently updated first",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			status, _ := cmd.Flags().GetString("status")
			courses, err := course.NewDBRepository(db).FindAll(cmd.Context(), status)
			if err != nil {
				return fmt.Errorf("repo.FindAll(%s) > %w", status, err)
			}
			for _, c := range courses {
				fmt.Printf("%d\t%s\t%s\t%.0f%%\n", c.ID, c.Title, c.Status, c.CurrentProgress)
			}
			return nil
		},
	}
	listCmd.Flags().String("status", "", "filter by status (active, completed, paused)")

	showCmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a course and its modules",
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

			repo := course.NewDBRepository(db)
			c, err := repo.FindByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("repo.FindByID(%d) > %w", id, err)
			}
			fmt.Printf("%s (%s)\n", c.Title, c.Status)
			if c.Description != "" {
				fmt.Println(c.Description)
			}
			fmt.Printf("Progress: %.0f%%, difficulty %d, priority %d\n",
				c.CurrentProgress, c.Difficulty, c.Priority)

			modules, err := repo.FindModules(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("repo.FindModules(%d) > %w", id, err)
			}
			for _, m := range modules {
				mark := " "
				if m.Completed {
					mark = "x"
				}
				fmt.Printf("  [%s] %d. %s (module %d)\n", mark, m.OrderIndex, m.Title, m.ID)
			}
			return nil
		},
	}

	progressCmd := &cobra.Command{
		Use:   "progress ID PERCENT",
		Short: "Set the completion percentage of a course",
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

			if err := course.NewDBRepository(db).UpdateProgress(cmd.Context(), id, progress); err != nil {
				return fmt.Errorf("repo.UpdateProgress(%d) > %w", id, err)
			}
			fmt.Printf("Course %d progress set to %.0f%%\n", id, progress)
			return nil
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a course and everything attached to it",
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

			if err := course.NewDBRepository(db).Delete(cmd.Context(), id); err != nil {
				return fmt.Errorf("repo.Delete(%d) > %w", id, err)
			}
			fmt.Printf("Deleted course %d\n", id)
			return nil
		},
	}

	rootCommand.AddCommand(createCmd, listCmd, showCmd, progressCmd, deleteCmd, newModuleCommand())
	return &rootCommand
}

func newModuleCommand() *cobra.Command {
	moduleCommand := cobra.Command{
		Use:   "module",
		Short: "Manage course modules",
	}

	addCmd := &cobra.Command{
		Use:   "add COURSE_ID TITLE",
		Short: "Add a module to a course",
		Args:  cobra.ExactArgs(2),
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
			description, _ := flags.GetString("description")
			minutes, _ := flags.GetInt("minutes")
			order, _ := flags.GetInt("order")

			m := &course.Module{
				CourseID:         courseID,
				Title:            args[1],
				Description:      description,
				EstimatedMinutes: minutes,
				OrderIndex:       order,
			}
			if err := course.NewDBRepository(db).AddModule(cmd.Context(), m); err != nil {
				return fmt.Errorf("repo.AddModule(%s) > %w", m.Title, err)
			}
			fmt.Printf("Added module %d at position %d\n", m.ID, m.OrderIndex)
			return nil
		},
	}
	addFlags := addCmd.Flags()
	addFlags.String("description", "", "module description")
	addFlags.Int("minutes", 0, "estimated minutes")
	addFlags.Int("order", 0, "explicit order index; 0 appends after the last module")

	completeCmd := &cobra.Command{
		Use:   "complete MODULE_ID",
		Short: "Mark a module as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			moduleID, err := parseID(args[0])
			if err != nil {
				return err
			}
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := course.NewDBRepository(db).CompleteModule(cmd.Context(), moduleID); err != nil {
				return fmt.Errorf("repo.CompleteModule(%d) > %w", moduleID, err)
			}
			fmt.Printf("Module %d completed\n", moduleID)
			return nil
		},
	}

	moduleCommand.AddCommand(addCmd, completeCmd)
	return &moduleCommand
}
