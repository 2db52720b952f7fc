package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/learntrack/learntrack/internal/session"
)

// StudySessionCLI runs a timed study session: start, wait for the user to
// finish, then collect notes and mood/energy ratings. At most one session is
// open at a time; the guard lives here rather than in the store.
type StudySessionCLI struct {
	*InteractiveCLI
	repo          session.Repository
	courseID      int64
	moduleID      *int64
	sessionType   string
	openSessionID int64
}

// NewStudySessionCLI prepares a study session for a course and optional module.
func NewStudySessionCLI(
	base *InteractiveCLI,
	repo session.Repository,
	courseID int64,
	moduleID *int64,
	sessionType string,
) *StudySessionCLI {
	return &StudySessionCLI{
		InteractiveCLI: base,
		repo:           repo,
		courseID:       courseID,
		moduleID:       moduleID,
		sessionType:    sessionType,
	}
}

func (r *StudySessionCLI) Session(ctx context.Context) error {
	if r.openSessionID == 0 {
		id, err := r.repo.Start(ctx, r.courseID, r.moduleID, r.sessionType)
		if err != nil {
			return fmt.Errorf("repo.Start(%d) > %w", r.courseID, err)
		}
		r.openSessionID = id
		_, _ = r.bold.Fprintln(r.stdoutWriter, "Study session started.")
		fmt.Fprint(r.stdoutWriter, "Press Enter when you are done: ")
		if _, err := r.readLine(); err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
		return nil
	}

	fmt.Fprint(r.stdoutWriter, "Session notes (optional): ")
	notes, err := r.readLine()
	if err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}

	mood, err := r.readRating("Mood (1-5): ")
	if err != nil {
		return err
	}
	energy, err := r.readRating("Energy (1-5): ")
	if err != nil {
		return err
	}

	if err := r.repo.End(ctx, r.openSessionID, notes, mood, energy); err != nil {
		return fmt.Errorf("repo.End(%d) > %w", r.openSessionID, err)
	}

	recorded, err := r.repo.FindByID(ctx, r.openSessionID)
	if err != nil {
		return fmt.Errorf("repo.FindByID(%d) > %w", r.openSessionID, err)
	}
	r.openSessionID = 0
	_, _ = r.green.Fprintf(r.stdoutWriter, "Recorded %d minute(s) of study.\n",
		recorded.DurationMinutes.Int64)
	return errEnd
}

func (r *StudySessionCLI) readRating(prompt string) (int, error) {
	for {
		fmt.Fprint(r.stdoutWriter, prompt)
		input, err := r.readLine()
		if err != nil {
			return 0, fmt.Errorf("error reading input: %w", err)
		}
		value, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || value < 1 || value > 5 {
			_, _ = r.red.Fprintln(r.stdoutWriter, "Please enter a number between 1 and 5.")
			continue
		}
		return value, nil
	}
}
