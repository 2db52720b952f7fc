package course

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/learntrack/learntrack/internal/apperr"
)

// Module is an ordered sub-unit of a course.
type Module struct {
	ID               int64        `db:"id"`
	CourseID         int64        `db:"course_id"`
	Title            string       `db:"title"`
	Description      string       `db:"description"`
	OrderIndex       int          `db:"order_index"`
	Completed        bool         `db:"completed"`
	CompletionDate   sql.NullTime `db:"completion_date"`
	EstimatedMinutes int          `db:"estimated_minutes"`
	ActualMinutes    int          `db:"actual_minutes"`
}

// AddModule inserts a module for a course. When OrderIndex is zero it is
// assigned 1 + the highest existing order index for that course, so ordering
// stays monotonically increasing and gap-tolerant.
func (r *DBRepository) AddModule(ctx context.Context, m *Module) error {
	if strings.TrimSpace(m.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}

	if m.OrderIndex == 0 {
		var maxOrder sql.NullInt64
		err := r.db.GetContext(ctx, &maxOrder,
			"SELECT MAX(order_index) FROM course_modules WHERE course_id = ?", m.CourseID)
		if err != nil {
			return apperr.NewStorage("db.GetContext(max module order)", err)
		}
		m.OrderIndex = int(maxOrder.Int64) + 1
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO course_modules (course_id, title, description, order_index, estimated_minutes, actual_minutes)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.CourseID, m.Title, m.Description, m.OrderIndex, m.EstimatedMinutes, m.ActualMinutes)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(insert module)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperr.NewStorage("result.LastInsertId()", err)
	}
	m.ID = id
	return nil
}

// FindModules returns the modules of a course ordered by order index.
func (r *DBRepository) FindModules(ctx context.Context, courseID int64) ([]Module, error) {
	var modules []Module
	err := r.db.SelectContext(ctx, &modules,
		"SELECT * FROM course_modules WHERE course_id = ? ORDER BY order_index", courseID)
	if err != nil {
		return nil, apperr.NewStorage("db.SelectContext(modules)", err)
	}
	return modules, nil
}

// CompleteModule marks a module completed and stamps the completion date.
// Completing an already completed module re-stamps the date.
func (r *DBRepository) CompleteModule(ctx context.Context, moduleID int64) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE course_modules SET completed = TRUE, completion_date = ? WHERE id = ?",
		time.Now().UTC(), moduleID)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(complete module)", err)
	}
	return requireRowAffected(result, "module", moduleID)
}
