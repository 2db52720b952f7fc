package flashcard_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/flashcard"
	"github.com/learntrack/learntrack/internal/testutil"
)

func TestDBRepository_FindDue(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := flashcard.NewDBRepository(db)
	ctx := context.Background()

	courseID := testutil.CreateCourse(t, db, "Spanish")
	otherCourseID := testutil.CreateCourse(t, db, "French")

	fresh := &flashcard.Flashcard{CourseID: courseID, Question: "hola?", Answer: "hello"}
	require.NoError(t, repo.Create(ctx, fresh))

	other := &flashcard.Flashcard{CourseID: otherCourseID, Question: "bonjour?", Answer: "hello"}
	require.NoError(t, repo.Create(ctx, other))

	// A card reviewed easy moves its next review into the future.
	scheduled := &flashcard.Flashcard{CourseID: courseID, Question: "adios?", Answer: "goodbye"}
	require.NoError(t, repo.Create(ctx, scheduled))
	_, err := repo.Review(ctx, scheduled.ID, flashcard.RatingEasy)
	require.NoError(t, err)

	t.Run("future cards are never due", func(t *testing.T) {
		due, err := repo.FindDue(ctx, 0, 20)
		require.NoError(t, err)
		now := time.Now().UTC()
		for _, card := range due {
			if card.NextReview.Valid {
				assert.False(t, card.NextReview.Time.After(now))
			}
			assert.NotEqual(t, scheduled.ID, card.ID)
		}
		assert.Len(t, due, 2)
	})

	t.Run("filter by course", func(t *testing.T) {
		due, err := repo.FindDue(ctx, courseID, 20)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, fresh.ID, due[0].ID)
	})

	t.Run("limit caps the batch", func(t *testing.T) {
		due, err := repo.FindDue(ctx, 0, 1)
		require.NoError(t, err)
		assert.Len(t, due, 1)
	})
}

func TestDBRepository_Review(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := flashcard.NewDBRepository(db)
	ctx := context.Background()

	courseID := testutil.CreateCourse(t, db, "Anatomy")
	card := &flashcard.Flashcard{CourseID: courseID, Question: "bones?", Answer: "206"}
	require.NoError(t, repo.Create(ctx, card))

	reviewed, err := repo.Review(ctx, card.ID, flashcard.RatingEasy)
	require.NoError(t, err)
	assert.Equal(t, 1, reviewed.TimesReviewed)
	assert.Equal(t, 1, reviewed.CorrectAnswers)
	assert.GreaterOrEqual(t, reviewed.IntervalDays, 1)

	// The persisted state matches what Review returned.
	stored, err := repo.FindByID(ctx, card.ID)
	require.NoError(t, err)
	assert.Equal(t, reviewed.TimesReviewed, stored.TimesReviewed)
	assert.Equal(t, reviewed.IntervalDays, stored.IntervalDays)
	assert.InDelta(t, reviewed.EaseFactor, stored.EaseFactor, 0.001)
	require.True(t, stored.NextReview.Valid)
	require.True(t, stored.LastReviewed.Valid)
	assert.False(t, stored.NextReview.Time.Before(stored.LastReviewed.Time))

	t.Run("unknown card", func(t *testing.T) {
		_, err := repo.Review(ctx, 9999, flashcard.RatingEasy)
		var nfe *apperr.NotFoundError
		assert.ErrorAs(t, err, &nfe)
	})

	t.Run("empty question rejected", func(t *testing.T) {
		var verr *apperr.ValidationError
		err := repo.Create(ctx, &flashcard.Flashcard{CourseID: courseID, Question: " ", Answer: "x"})
		assert.ErrorAs(t, err, &verr)
	})
}
