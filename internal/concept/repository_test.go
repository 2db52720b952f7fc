package concept_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/concept"
	"github.com/learntrack/learntrack/internal/testutil"
)

func TestDBRepository_Create(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := concept.NewDBRepository(db)
	ctx := context.Background()

	recursion := &concept.Concept{Name: "Recursion", Importance: 5}
	require.NoError(t, repo.Create(ctx, recursion))
	assert.Equal(t, "general", recursion.Category)

	t.Run("duplicate name violates uniqueness", func(t *testing.T) {
		err := repo.Create(ctx, &concept.Concept{Name: "Recursion"})
		var cerr *apperr.ConstraintError
		assert.ErrorAs(t, err, &cerr)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		var verr *apperr.ValidationError
		assert.ErrorAs(t, repo.Create(ctx, &concept.Concept{Name: " "}), &verr)
	})
}

func TestDBRepository_FindAll(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := concept.NewDBRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &concept.Concept{Name: "Bravo", Importance: 1, Category: "math"}))
	require.NoError(t, repo.Create(ctx, &concept.Concept{Name: "Alpha", Importance: 1, Category: "math"}))
	require.NoError(t, repo.Create(ctx, &concept.Concept{Name: "Zulu", Importance: 9, Category: "cs"}))

	all, err := repo.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Importance descending, then name ascending.
	assert.Equal(t, "Zulu", all[0].Name)
	assert.Equal(t, "Alpha", all[1].Name)
	assert.Equal(t, "Bravo", all[2].Name)

	math, err := repo.FindAll(ctx, "math")
	require.NoError(t, err)
	assert.Len(t, math, 2)
}

func TestDBRepository_LinkEntity(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := concept.NewDBRepository(db)
	ctx := context.Background()

	c := &concept.Concept{Name: "Pointers"}
	require.NoError(t, repo.Create(ctx, c))
	courseID := testutil.CreateCourse(t, db, "C Programming")

	require.NoError(t, repo.LinkEntity(ctx, "course", courseID, c.ID, "teaches", 0.5))
	// Linking the same triple again replaces the strength rather than
	// adding a second row.
	require.NoError(t, repo.LinkEntity(ctx, "course", courseID, c.ID, "teaches", 0.9))

	linked, err := repo.FindForEntity(ctx, "course", courseID)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "Pointers", linked[0].Name)
	assert.InDelta(t, 0.9, linked[0].Strength, 0.001)

	t.Run("unknown concept id violates foreign key", func(t *testing.T) {
		err := repo.LinkEntity(ctx, "course", courseID, 9999, "related", 1.0)
		var cerr *apperr.ConstraintError
		assert.ErrorAs(t, err, &cerr)
	})
}
