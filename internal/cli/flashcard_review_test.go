package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntrack/learntrack/internal/flashcard"
	"github.com/learntrack/learntrack/internal/session"
	"github.com/learntrack/learntrack/internal/testutil"
)

func TestFlashcardReviewCLI_Session(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := flashcard.NewDBRepository(db)
	courseID := testutil.CreateCourse(t, db, "Spanish")

	card := &flashcard.Flashcard{CourseID: courseID, Question: "hola", Answer: "hello"}
	require.NoError(t, repo.Create(ctx, card))

	t.Run("reviewing the only card ends the session", func(t *testing.T) {
		// Reveal, rate easy, then the next call finds no cards.
		stdin := strings.NewReader("\ne\n")
		var stdout bytes.Buffer
		base := NewInteractiveCLI(stdin, &stdout)

		review, err := NewFlashcardReviewCLI(ctx, base, repo, courseID, 10)
		require.NoError(t, err)
		require.Equal(t, 1, review.CardCount())

		require.NoError(t, review.Session(ctx))
		err = review.Session(ctx)
		assert.ErrorIs(t, err, errEnd)

		output := stdout.String()
		assert.Contains(t, output, "hola")
		assert.Contains(t, output, "hello")
		assert.Contains(t, output, "Reviewed 1 card(s), 1 rated easy.")

		updated, err := repo.FindByID(ctx, card.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, updated.TimesReviewed)
	})

	t.Run("quit before rating leaves the card unreviewed", func(t *testing.T) {
		fresh := &flashcard.Flashcard{CourseID: courseID, Question: "uno", Answer: "one"}
		require.NoError(t, repo.Create(ctx, fresh))

		stdin := strings.NewReader("\nq\n")
		var stdout bytes.Buffer
		base := NewInteractiveCLI(stdin, &stdout)

		review, err := NewFlashcardReviewCLI(ctx, base, repo, courseID, 10)
		require.NoError(t, err)
		require.NotZero(t, review.CardCount())

		err = review.Session(ctx)
		assert.ErrorIs(t, err, errEnd)

		after, err := repo.FindByID(ctx, fresh.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, after.TimesReviewed)
	})

	t.Run("unknown rating input reprompts", func(t *testing.T) {
		other := &flashcard.Flashcard{CourseID: courseID, Question: "adios", Answer: "goodbye"}
		require.NoError(t, repo.Create(ctx, other))

		stdin := strings.NewReader("\nx\n\nm\n")
		var stdout bytes.Buffer
		base := NewInteractiveCLI(stdin, &stdout)

		review, err := NewFlashcardReviewCLI(ctx, base, repo, courseID, 1)
		require.NoError(t, err)

		require.NoError(t, review.Session(ctx))
		require.NoError(t, review.Session(ctx))
		assert.Contains(t, stdout.String(), "Please answer h, m, e, or q.")
	})
}

func TestStudySessionCLI_Session(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := session.NewDBRepository(db)
	courseID := testutil.CreateCourse(t, db, "History")

	stdin := strings.NewReader("\ngood focus\n4\n3\n")
	var stdout bytes.Buffer
	base := NewInteractiveCLI(stdin, &stdout)
	study := NewStudySessionCLI(base, repo, courseID, nil, "study")

	// First call starts the session and waits; second call ends it.
	require.NoError(t, study.Session(ctx))
	err := study.Session(ctx)
	assert.ErrorIs(t, err, errEnd)

	assert.Contains(t, stdout.String(), "Recorded 0 minute(s) of study.")
}

func TestStudySessionCLI_RejectsBadRatings(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := session.NewDBRepository(db)
	courseID := testutil.CreateCourse(t, db, "Art")

	stdin := strings.NewReader("\n\n9\n5\n0\n1\n")
	var stdout bytes.Buffer
	base := NewInteractiveCLI(stdin, &stdout)
	study := NewStudySessionCLI(base, repo, courseID, nil, "study")

	require.NoError(t, study.Session(ctx))
	err := study.Session(ctx)
	assert.ErrorIs(t, err, errEnd)
	assert.Contains(t, stdout.String(), "Please enter a number between 1 and 5.")
}
