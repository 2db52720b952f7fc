// Package session provides learning session tracking and time-window statistics.
package session

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/database"
)

// LearningSession is a timed study interval associated with a course and
// optionally a module. A session without an end time is still open.
type LearningSession struct {
	ID              int64         `db:"id"`
	CourseID        int64         `db:"course_id"`
	ModuleID        sql.NullInt64 `db:"module_id"`
	StartTime       time.Time     `db:"start_time"`
	EndTime         sql.NullTime  `db:"end_time"`
	DurationMinutes sql.NullInt64 `db:"duration_minutes"`
	Notes           string        `db:"notes"`
	SessionType     string        `db:"session_type"`
	Mood            int           `db:"mood"`
	EnergyLevel     int           `db:"energy_level"`
}

// Statistics aggregates study activity over a trailing window.
type Statistics struct {
	StudyHours        float64
	SessionCount      int
	ActiveCourses     int
	CompletedModules  int
	AvgSessionMinutes float64
}

// Repository defines operations for managing learning sessions.
type Repository interface {
	Start(ctx context.Context, courseID int64, moduleID *int64, sessionType string) (int64, error)
	End(ctx context.Context, id int64, notes string, mood, energy int) error
	FindByID(ctx context.Context, id int64) (*LearningSession, error)
	Statistics(ctx context.Context, windowDays int) (*Statistics, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Start opens a session for a course with the current time as start time.
func (r *DBRepository) Start(ctx context.Context, courseID int64, moduleID *int64, sessionType string) (int64, error) {
	if sessionType == "" {
		sessionType = "study"
	}
	var module sql.NullInt64
	if moduleID != nil {
		module = sql.NullInt64{Int64: *moduleID, Valid: true}
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO learning_sessions (course_id, module_id, start_time, session_type, notes)
		VALUES (?, ?, ?, ?, '')`,
		courseID, module, time.Now().UTC(), sessionType)
	if err != nil {
		return 0, apperr.NewStorage("db.ExecContext(insert session)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperr.NewStorage("result.LastInsertId()", err)
	}
	return id, nil
}

// End seals an open session: it stamps the end time, derives the duration in
// minutes from the wall-clock delta, and records notes, mood, and energy.
// Ending a session that does not exist or was already ended returns NotFoundError.
func (r *DBRepository) End(ctx context.Context, id int64, notes string, mood, energy int) error {
	if mood < 1 || mood > 5 {
		return apperr.NewValidation("mood", "must be between 1 and 5")
	}
	if energy < 1 || energy > 5 {
		return apperr.NewValidation("energy", "must be between 1 and 5")
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		var startTime time.Time
		err := tx.GetContext(ctx, &startTime,
			"SELECT start_time FROM learning_sessions WHERE id = ? AND end_time IS NULL", id)
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.NewNotFound("open session", id)
		}
		if err != nil {
			return apperr.NewStorage("tx.GetContext(open session)", err)
		}

		endTime := time.Now().UTC()
		duration := int64(endTime.Sub(startTime).Minutes())
		if duration < 0 {
			duration = 0
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE learning_sessions
			SET end_time = ?, duration_minutes = ?, notes = ?, mood = ?, energy_level = ?
			WHERE id = ?`,
			endTime, duration, notes, mood, energy, id)
		if err != nil {
			return apperr.NewStorage("tx.ExecContext(end session)", err)
		}
		return nil
	})
}

// FindByID returns the session with the given id.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*LearningSession, error) {
	var s LearningSession
	err := r.db.GetContext(ctx, &s, "SELECT * FROM learning_sessions WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("session", id)
	}
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(session)", err)
	}
	return &s, nil
}

// Statistics aggregates sessions and module completions over the trailing
// windowDays days. The average session length is zero when no sessions fall
// inside the window.
func (r *DBRepository) Statistics(ctx context.Context, windowDays int) (*Statistics, error) {
	windowStart := time.Now().UTC().AddDate(0, 0, -windowDays)

	var totalMinutes sql.NullFloat64
	err := r.db.GetContext(ctx, &totalMinutes,
		"SELECT SUM(duration_minutes) FROM learning_sessions WHERE start_time >= ?", windowStart)
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(total study minutes)", err)
	}

	var sessionCount int
	err = r.db.GetContext(ctx, &sessionCount,
		"SELECT COUNT(*) FROM learning_sessions WHERE start_time >= ?", windowStart)
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(session count)", err)
	}

	var activeCourses int
	err = r.db.GetContext(ctx, &activeCourses,
		"SELECT COUNT(*) FROM courses WHERE status = 'active'")
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(active courses)", err)
	}

	var completedModules int
	err = r.db.GetContext(ctx, &completedModules,
		"SELECT COUNT(*) FROM course_modules WHERE completed = TRUE AND completion_date >= ?", windowStart)
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(completed modules)", err)
	}

	stats := &Statistics{
		StudyHours:       roundTo1(totalMinutes.Float64 / 60),
		SessionCount:     sessionCount,
		ActiveCourses:    activeCourses,
		CompletedModules: completedModules,
	}
	if sessionCount > 0 {
		stats.AvgSessionMinutes = roundTo1(totalMinutes.Float64 / float64(sessionCount))
	}
	return stats, nil
}

func roundTo1(v float64) float64 {
	return math.Round(v*10) / 10
}
