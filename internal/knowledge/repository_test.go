package knowledge_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learntrack/learntrack/internal/knowledge"
	"github.com/learntrack/learntrack/internal/testutil"
)

func TestDBRepository_SaveLoadForCourse(t *testing.T) {
	ctx := context.Background()
	db := testutil.OpenTestDB(t)
	repo := knowledge.NewDBRepository(db)
	courseID := testutil.CreateCourse(t, db, "Discrete Math")

	g := knowledge.NewGraph()
	require.NoError(t, g.AddNode("Logic", "subject", "Propositions"))
	require.NoError(t, g.AddNode("Proofs", "concept", ""))
	require.NoError(t, g.AddEdge("Logic", "Proofs", "prerequisite"))

	require.NoError(t, repo.SaveForCourse(ctx, courseID, g))

	loaded, err := repo.LoadForCourse(ctx, courseID)
	require.NoError(t, err)
	assert.Equal(t, g.Nodes(), loaded.Nodes())
	assert.Equal(t, g.Edges(), loaded.Edges())
	attrs, ok := loaded.Node("Logic")
	require.True(t, ok)
	assert.Equal(t, "Propositions", attrs.Description)

	t.Run("save replaces previous contents", func(t *testing.T) {
		next := knowledge.NewGraph()
		require.NoError(t, next.AddNode("Graphs", "subject", ""))
		require.NoError(t, repo.SaveForCourse(ctx, courseID, next))

		loaded, err := repo.LoadForCourse(ctx, courseID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Graphs"}, loaded.Nodes())
		assert.Empty(t, loaded.Edges())
	})

	t.Run("courses are isolated", func(t *testing.T) {
		otherID := testutil.CreateCourse(t, db, "Linear Algebra")
		loaded, err := repo.LoadForCourse(ctx, otherID)
		require.NoError(t, err)
		assert.Empty(t, loaded.Nodes())
	})
}
