// Package exercise provides practice exercise tracking.
package exercise

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

// Exercise statuses.
const (
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusAbandoned  = "abandoned"
)

// Exercise represents a practice exercise, optionally tied to a course.
type Exercise struct {
	ID               int64         `db:"id"`
	Title            string        `db:"title"`
	Description      string        `db:"description"`
	Category         string        `db:"category"`
	Difficulty       int           `db:"difficulty"`
	ExerciseType     string        `db:"exercise_type"`
	ConversationLink string        `db:"conversation_link"`
	Platform         string        `db:"platform"`
	Status           string        `db:"status"`
	Progress         float64       `db:"progress"`
	EstimatedTime    int           `db:"estimated_time"`
	ActualTime       int           `db:"actual_time"`
	Concepts         tags.List     `db:"concepts"`
	CourseID         sql.NullInt64 `db:"course_id"`
	Notes            string        `db:"notes"`
	Tags             tags.List     `db:"tags"`
	CompletedAt      sql.NullTime  `db:"completed_at"`
	CreatedAt        time.Time     `db:"created_at"`
	UpdatedAt        time.Time     `db:"updated_at"`
}

// ProgressUpdate carries the mutable progress fields. Nil pointers leave the
// stored value unchanged.
type ProgressUpdate struct {
	Progress   float64
	ActualTime *int
	Status     *string
}

// Repository defines operations for managing exercises.
type Repository interface {
	Create(ctx context.Context, e *Exercise) error
	FindAll(ctx context.Context, status string, courseID int64) ([]Exercise, error)
	FindByID(ctx context.Context, id int64) (*Exercise, error)
	UpdateProgress(ctx context.Context, id int64, update ProgressUpdate) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new exercise with sensible defaults for unset fields.
func (r *DBRepository) Create(ctx context.Context, e *Exercise) error {
	if strings.TrimSpace(e.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	if e.Category == "" {
		e.Category = "general"
	}
	if e.Difficulty == 0 {
		e.Difficulty = 1
	}
	if e.ExerciseType == "" {
		e.ExerciseType = "coding"
	}
	if e.Platform == "" {
		e.Platform = "LLM"
	}
	if e.Status == "" {
		e.Status = StatusInProgress
	}
	if e.EstimatedTime == 0 {
		e.EstimatedTime = 60
	}
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO exercises (title, description, category, difficulty, exercise_type, conversation_link,
			platform, status, progress, estimated_time, actual_time, concepts, course_id, notes, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Title, e.Description, e.Category, e.Difficulty, e.ExerciseType, e.ConversationLink,
		e.Platform, e.Status, e.Progress, e.EstimatedTime, e.ActualTime, e.Concepts, e.CourseID, e.Notes, e.Tags,
		e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(insert exercise)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperr.NewStorage("result.LastInsertId()", err)
	}
	e.ID = id
	return nil
}

// FindAll returns exercises, newest first, optionally filtered by status and course.
func (r *DBRepository) FindAll(ctx context.Context, status string, courseID int64) ([]Exercise, error) {
	query := "SELECT * FROM exercises WHERE 1=1"
	var args []any
	if status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}
	if courseID != 0 {
		query += " AND course_id = ?"
		args = append(args, courseID)
	}
	query += " ORDER BY created_at DESC, id DESC"

	var exercises []Exercise
	if err := r.db.SelectContext(ctx, &exercises, query, args...); err != nil {
		return nil, apperr.NewStorage("db.SelectContext(exercises)", err)
	}
	return exercises, nil
}

// FindByID returns the exercise with the given id.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Exercise, error) {
	var e Exercise
	err := r.db.GetContext(ctx, &e, "SELECT * FROM exercises WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("exercise", id)
	}
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(exercise)", err)
	}
	return &e, nil
}

// UpdateProgress updates an exercise's progress, and optionally its actual
// time and status. Moving to completed stamps completed_at.
func (r *DBRepository) UpdateProgress(ctx context.Context, id int64, update ProgressUpdate) error {
	if update.Progress < 0 || update.Progress > 100 {
		return apperr.NewValidation("progress", "must be between 0 and 100")
	}

	setClauses := []string{"progress = ?", "updated_at = ?"}
	args := []any{update.Progress, time.Now().UTC()}

	if update.ActualTime != nil {
		setClauses = append(setClauses, "actual_time = ?")
		args = append(args, *update.ActualTime)
	}
	if update.Status != nil {
		setClauses = append(setClauses, "status = ?")
		args = append(args, *update.Status)
		if *update.Status == StatusCompleted {
			setClauses = append(setClauses, "completed_at = ?")
			args = append(args, time.Now().UTC())
		}
	}
	args = append(args, id)

	result, err := r.db.ExecContext(ctx,
		"UPDATE exercises SET "+strings.Join(setClauses, ", ")+" WHERE id = ?", args...)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(update exercise progress)", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.NewStorage("result.RowsAffected()", err)
	}
	if affected == 0 {
		return apperr.NewNotFound("exercise", id)
	}
	return nil
}
