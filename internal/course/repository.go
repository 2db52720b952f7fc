// Package course provides course and module domain models and repositories.
package course

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/tags"
)

// Course statuses.
const (
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusPaused    = "paused"
)

// Course represents a top-level learning unit the user tracks progress against.
type Course struct {
	ID              int64        `db:"id"`
	Title           string       `db:"title"`
	Description     string       `db:"description"`
	Category        string       `db:"category"`
	Difficulty      int          `db:"difficulty"`
	EstimatedHours  int          `db:"estimated_hours"`
	CurrentProgress float64      `db:"current_progress"`
	Status          string       `db:"status"`
	StartDate       time.Time    `db:"start_date"`
	TargetDate      sql.NullTime `db:"target_date"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	Tags            tags.List    `db:"tags"`
	Priority        int          `db:"priority"`
}

// Repository defines operations for managing courses and their modules.
type Repository interface {
	Create(ctx context.Context, c *Course) error
	FindAll(ctx context.Context, status string) ([]Course, error)
	FindByID(ctx context.Context, id int64) (*Course, error)
	Update(ctx context.Context, c *Course) error
	UpdateProgress(ctx context.Context, id int64, progress float64) error
	Delete(ctx context.Context, id int64) error

	AddModule(ctx context.Context, m *Module) error
	FindModules(ctx context.Context, courseID int64) ([]Module, error)
	CompleteModule(ctx context.Context, moduleID int64) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new course. The start date defaults to today and the status
// to active when unset. The assigned id is written back to c.
func (r *DBRepository) Create(ctx context.Context, c *Course) error {
	if strings.TrimSpace(c.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	if c.Difficulty < 1 || c.Difficulty > 5 {
		return apperr.NewValidation("difficulty", "must be between 1 and 5")
	}

	now := time.Now().UTC()
	if c.StartDate.IsZero() {
		c.StartDate = now.Truncate(24 * time.Hour)
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if c.Priority == 0 {
		c.Priority = 3
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO courses (title, description, category, difficulty, estimated_hours,
			current_progress, status, start_date, target_date, created_at, updated_at, tags, priority)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Category, c.Difficulty, c.EstimatedHours,
		c.CurrentProgress, c.Status, c.StartDate, c.TargetDate, c.CreatedAt, c.UpdatedAt, c.Tags, c.Priority)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(insert course)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperr.NewStorage("result.LastInsertId()", err)
	}
	c.ID = id
	return nil
}

// FindAll returns courses ordered by most recently updated first.
// A non-empty status restricts the result to an exact status match.
func (r *DBRepository) FindAll(ctx context.Context, status string) ([]Course, error) {
	query := "SELECT * FROM courses"
	var args []any
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY updated_at DESC, id DESC"

	var courses []Course
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, apperr.NewStorage("db.SelectContext(courses)", err)
	}
	return courses, nil
}

// FindByID returns the course with the given id.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Course, error) {
	var c Course
	err := r.db.GetContext(ctx, &c, "SELECT * FROM courses WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("course", id)
	}
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(course)", err)
	}
	return &c, nil
}

// Update rewrites the editable fields of a course and refreshes updated_at.
func (r *DBRepository) Update(ctx context.Context, c *Course) error {
	if strings.TrimSpace(c.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	c.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE courses
		SET title = ?, description = ?, category = ?, difficulty = ?, estimated_hours = ?,
			status = ?, target_date = ?, tags = ?, priority = ?, updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.Category, c.Difficulty, c.EstimatedHours,
		c.Status, c.TargetDate, c.Tags, c.Priority, c.UpdatedAt, c.ID)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(update course)", err)
	}
	return requireRowAffected(result, "course", c.ID)
}

// UpdateProgress sets the completion percentage of a course.
// Values outside [0, 100] are rejected.
func (r *DBRepository) UpdateProgress(ctx context.Context, id int64, progress float64) error {
	if progress < 0 || progress > 100 {
		return apperr.NewValidation("progress", "must be between 0 and 100")
	}

	result, err := r.db.ExecContext(ctx,
		"UPDATE courses SET current_progress = ?, updated_at = ? WHERE id = ?",
		progress, time.Now().UTC(), id)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(update course progress)", err)
	}
	return requireRowAffected(result, "course", id)
}

// Delete removes a course. Modules, sessions, notes, flashcards, and knowledge
// nodes owned by the course are removed by foreign-key cascade.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(delete course)", err)
	}
	return requireRowAffected(result, "course", id)
}

func requireRowAffected(result sql.Result, entity string, id int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.NewStorage("result.RowsAffected()", err)
	}
	if affected == 0 {
		return apperr.NewNotFound(entity, id)
	}
	return nil
}
