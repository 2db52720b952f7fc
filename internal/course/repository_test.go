package course_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/course"
	"github.com/learntrack/learntrack/internal/tags"
	"github.com/learntrack/learntrack/internal/testutil"
)

func TestDBRepository_Create(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := course.NewDBRepository(db)
	ctx := context.Background()

	t.Run("assigns increasing ids and defaults", func(t *testing.T) {
		first := &course.Course{Title: "Algebra I", Difficulty: 2, EstimatedHours: 20}
		require.NoError(t, repo.Create(ctx, first))

		second := &course.Course{Title: "Algebra II", Difficulty: 3, Tags: tags.List{"math", "advanced"}}
		require.NoError(t, repo.Create(ctx, second))

		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, course.StatusActive, first.Status)
		assert.False(t, first.StartDate.IsZero())
		assert.Equal(t, 3, first.Priority)

		courses, err := repo.FindAll(ctx, "")
		require.NoError(t, err)
		require.Len(t, courses, 2)
		// Most recently updated first.
		assert.Equal(t, "Algebra II", courses[0].Title)
		assert.Equal(t, tags.List{"math", "advanced"}, courses[0].Tags)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		err := repo.Create(ctx, &course.Course{Title: "   ", Difficulty: 1})
		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "title", verr.Field)
	})

	t.Run("rejects out of range difficulty", func(t *testing.T) {
		err := repo.Create(ctx, &course.Course{Title: "Too Hard", Difficulty: 6})
		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
	})
}

func TestDBRepository_FindAll(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := course.NewDBRepository(db)
	ctx := context.Background()

	testutil.SeedCourses(t, db, `
- title: Active
  difficulty: 1
- title: Paused
  difficulty: 1
  status: paused
`)

	got, err := repo.FindAll(ctx, course.StatusActive)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Active", got[0].Title)

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDBRepository_UpdateProgress(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := course.NewDBRepository(db)
	ctx := context.Background()

	c := &course.Course{Title: "Go", Difficulty: 2}
	require.NoError(t, repo.Create(ctx, c))

	tests := []struct {
		name           string
		id             int64
		progress       float64
		wantValidation bool
		wantNotFound   bool
	}{
		{name: "valid progress", id: c.ID, progress: 42.5},
		{name: "negative progress rejected", id: c.ID, progress: -1, wantValidation: true},
		{name: "progress above 100 rejected", id: c.ID, progress: 100.5, wantValidation: true},
		{name: "unknown course", id: 9999, progress: 10, wantNotFound: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateProgress(ctx, tt.id, tt.progress)
			if tt.wantValidation {
				var verr *apperr.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			if tt.wantNotFound {
				var nfe *apperr.NotFoundError
				assert.ErrorAs(t, err, &nfe)
				return
			}
			require.NoError(t, err)

			got, err := repo.FindByID(ctx, tt.id)
			require.NoError(t, err)
			assert.InDelta(t, tt.progress, got.CurrentProgress, 0.001)
		})
	}
}

func TestDBRepository_Modules(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := course.NewDBRepository(db)
	ctx := context.Background()

	c := &course.Course{Title: "Algebra I", Difficulty: 2, EstimatedHours: 20}
	require.NoError(t, repo.Create(ctx, c))

	first := &course.Module{CourseID: c.ID, Title: "Linear Equations", EstimatedMinutes: 60}
	require.NoError(t, repo.AddModule(ctx, first))
	assert.Equal(t, 1, first.OrderIndex)

	second := &course.Module{CourseID: c.ID, Title: "Quadratics"}
	require.NoError(t, repo.AddModule(ctx, second))
	assert.Equal(t, 2, second.OrderIndex)

	// Explicit order index is kept; later auto-assignments continue past it.
	gap := &course.Module{CourseID: c.ID, Title: "Review", OrderIndex: 10}
	require.NoError(t, repo.AddModule(ctx, gap))
	third := &course.Module{CourseID: c.ID, Title: "Polynomials"}
	require.NoError(t, repo.AddModule(ctx, third))
	assert.Equal(t, 11, third.OrderIndex)

	require.NoError(t, repo.CompleteModule(ctx, first.ID))

	modules, err := repo.FindModules(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, modules, 4)
	assert.Equal(t, "Linear Equations", modules[0].Title)
	assert.True(t, modules[0].Completed)
	assert.True(t, modules[0].CompletionDate.Valid)

	// Module completion does not change course status.
	active, err := repo.FindAll(ctx, course.StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, c.ID, active[0].ID)

	err = repo.CompleteModule(ctx, 9999)
	var nfe *apperr.NotFoundError
	assert.ErrorAs(t, err, &nfe)
}

func TestDBRepository_Delete(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := course.NewDBRepository(db)
	ctx := context.Background()

	c := &course.Course{Title: "Doomed", Difficulty: 1}
	require.NoError(t, repo.Create(ctx, c))
	m := &course.Module{CourseID: c.ID, Title: "Only Module"}
	require.NoError(t, repo.AddModule(ctx, m))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.FindByID(ctx, c.ID)
	var nfe *apperr.NotFoundError
	assert.ErrorAs(t, err, &nfe)

	modules, err := repo.FindModules(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, modules)
}
