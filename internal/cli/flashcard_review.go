package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/learntrack/learntrack/internal/flashcard"
)

// FlashcardReviewCLI manages the interactive review of due flashcards.
type FlashcardReviewCLI struct {
	*InteractiveCLI
	repo    flashcard.Repository
	session *flashcard.ReviewSession
	current *flashcard.Flashcard
}

// NewFlashcardReviewCLI loads the due cards for a course (courseID 0 means all
// courses) and prepares a shuffled review session.
func NewFlashcardReviewCLI(
	ctx context.Context,
	base *InteractiveCLI,
	repo flashcard.Repository,
	courseID int64,
	limit int,
) (*FlashcardReviewCLI, error) {
	cards, err := repo.FindDue(ctx, courseID, limit)
	if err != nil {
		return nil, fmt.Errorf("repo.FindDue(%d) > %w", courseID, err)
	}

	return &FlashcardReviewCLI{
		InteractiveCLI: base,
		repo:           repo,
		session:        flashcard.NewReviewSession(cards),
	}, nil
}

// CardCount returns the number of cards left in the session.
func (r *FlashcardReviewCLI) CardCount() int {
	return r.session.Remaining()
}

func (r *FlashcardReviewCLI) Session(ctx context.Context) error {
	if r.current == nil {
		card, ok := r.session.Next()
		if !ok {
			r.printSummary()
			return errEnd
		}
		r.current = card
	}

	fmt.Fprintf(r.stdoutWriter, "\n[%d left] ", r.session.Remaining()+1)
	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s\n", r.current.Question)
	fmt.Fprint(r.stdoutWriter, "Press Enter to reveal the answer: ")
	if _, err := r.readLine(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	_, _ = r.green.Fprintf(r.stdoutWriter, "%s\n", r.current.Answer)
	fmt.Fprint(r.stdoutWriter, "How did it go? (h)ard / (m)edium / (e)asy / (q)uit: ")
	input, err := r.readLine()
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	var rating flashcard.Rating
	switch strings.ToLower(input) {
	case "h", "hard":
		rating = flashcard.RatingHard
	case "m", "medium":
		rating = flashcard.RatingMedium
	case "e", "easy":
		rating = flashcard.RatingEasy
	case "q", "quit":
		r.printSummary()
		return errEnd
	default:
		_, _ = r.red.Fprintln(r.stdoutWriter, "Please answer h, m, e, or q.")
		return nil
	}

	updated, err := r.repo.Review(ctx, r.current.ID, rating)
	if err != nil {
		return fmt.Errorf("repo.Review(%d) > %w", r.current.ID, err)
	}
	r.session.Record(rating)
	fmt.Fprintf(r.stdoutWriter, "Next review in %d day(s).\n", updated.IntervalDays)
	r.current = nil
	return nil
}

func (r *FlashcardReviewCLI) printSummary() {
	if r.session.Reviewed == 0 {
		fmt.Fprintln(r.stdoutWriter, "No cards reviewed.")
		return
	}
	fmt.Fprintf(r.stdoutWriter, "\nReviewed %d card(s), %d rated easy.\n",
		r.session.Reviewed, r.session.Correct)
}
