package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/learntrack/learntrack/internal/cli"
	"github.com/learntrack/learntrack/internal/flashcard"
)

func newFlashcardCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use:   "flashcard",
		Short: "Manage and review flashcards",
	}

	addCmd := &cobra.Command{
		Use:   "add COURSE_ID QUESTION ANSWER",
		Short: "Add a flashcard to a course",
		Args:  cobra.ExactArgs(3),
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

			difficulty, _ := cmd.Flags().GetInt("difficulty")
			card := &flashcard.Flashcard{
				CourseID:   courseID,
				Question:   args[1],
				Answer:     args[2],
				Difficulty: difficulty,
			}
			if err := flashcard.NewDBRepository(db).Create(cmd.Context(), card); err != nil {
				return fmt.Errorf("repo.Create > %w", err)
			}
			fmt.Printf("Created flashcard %d\n", card.ID)
			return nil
		},
	}
	addCmd.Flags().Int("difficulty", 3, "difficulty from 1 to 5")

	dueCmd := &cobra.Command{
		Use:   "due",
		Short: "List flashcards that are due for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			courseID, _ := flags.GetInt64("course")
			limit, _ := flags.GetInt("limit")

			cards, err := flashcard.NewDBRepository(db).FindDue(cmd.Context(), courseID, limit)
			if err != nil {
				return fmt.Errorf("repo.FindDue(%d) > %w", courseID, err)
			}
			for _, card := range cards {
				fmt.Printf("%d\t%s\n", card.ID, card.Question)
			}
			fmt.Printf("%d card(s) due\n", len(cards))
			return nil
		},
	}
	dueFlags := dueCmd.Flags()
	dueFlags.Int64("course", 0, "restrict to a course; 0 means all courses")
	dueFlags.Int("limit", 20, "maximum number of cards")

	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Review due flashcards interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			flags := cmd.Flags()
			courseID, _ := flags.GetInt64("course")
			limit, _ := flags.GetInt("limit")

			base := cli.NewInteractiveCLI(nil, nil)
			review, err := cli.NewFlashcardReviewCLI(
				cmd.Context(), base, flashcard.NewDBRepository(db), courseID, limit)
			if err != nil {
				return err
			}
			if review.CardCount() == 0 {
				fmt.Println("No cards due. Come back later.")
				return nil
			}
			return base.Run(cmd.Context(), review)
		},
	}
	reviewFlags := reviewCmd.Flags()
	reviewFlags.Int64("course", 0, "restrict to a course; 0 means all courses")
	reviewFlags.Int("limit", 20, "maximum number of cards per session")

	rootCommand.AddCommand(addCmd, dueCmd, reviewCmd)
	return &rootCommand
}
