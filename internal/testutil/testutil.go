// Package testutil provides shared test helpers for database-backed tests.
package testutil

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/learntrack/learntrack/internal/course"
	"github.com/learntrack/learntrack/internal/database"
)

// OpenTestDB opens an in-memory SQLite database with the full schema applied.
// The connection is closed when the test finishes.
func OpenTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})
	return db
}

// CreateCourse inserts a course fixture and returns its id.
func CreateCourse(t *testing.T, db *sqlx.DB, title string) int64 {
	t.Helper()

	repo := course.NewDBRepository(db)
	c := &course.Course{Title: title, Difficulty: 2, EstimatedHours: 10}
	require.NoError(t, repo.Create(context.Background(), c))
	return c.ID
}

type courseFixture struct {
	Title      string   `yaml:"title"`
	Category   string   `yaml:"category"`
	Difficulty int      `yaml:"difficulty"`
	Status     string   `yaml:"status"`
	Tags       []string `yaml:"tags"`
}

// SeedCourses inserts the courses described by a YAML document and returns
// their ids in document order. Each entry needs at least a title; status
// defaults to active.
func SeedCourses(t *testing.T, db *sqlx.DB, doc string) []int64 {
	t.Helper()

	var fixtures []courseFixture
	require.NoError(t, yaml.Unmarshal([]byte(doc), &fixtures))

	repo := course.NewDBRepository(db)
	ids := make([]int64, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Difficulty == 0 {
			f.Difficulty = 2
		}
		c := &course.Course{
			Title:      f.Title,
			Category:   f.Category,
			Difficulty: f.Difficulty,
			Status:     f.Status,
			Tags:       f.Tags,
		}
		require.NoError(t, repo.Create(context.Background(), c))
		ids = append(ids, c.ID)
	}
	return ids
}
