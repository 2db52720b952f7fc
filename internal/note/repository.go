// Package note provides note domain models, repositories, and export helpers.
package note

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

// Note represents a text note, optionally attached to a course and module.
type Note struct {
	ID         int64         `db:"id"`
	CourseID   sql.NullInt64 `db:"course_id"`
	ModuleID   sql.NullInt64 `db:"module_id"`
	Title      string        `db:"title"`
	Content    string        `db:"content"`
	NoteType   string        `db:"note_type"`
	Tags       tags.List     `db:"tags"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
	IsFavorite bool          `db:"is_favorite"`
}

// Filter restricts note listing. A zero CourseID means all courses; a
// non-empty Search matches the title or content by case-insensitive
// substring containment.
type Filter struct {
	CourseID int64
	Search   string
}

// Repository defines operations for managing notes.
type Repository interface {
	Create(ctx context.Context, n *Note) error
	FindAll(ctx context.Context, filter Filter) ([]Note, error)
	FindByID(ctx context.Context, id int64) (*Note, error)
	Update(ctx context.Context, n *Note) error
	SetFavorite(ctx context.Context, id int64, favorite bool) error
	Delete(ctx context.Context, id int64) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new note. The assigned id is written back to n.
func (r *DBRepository) Create(ctx context.Context, n *Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	if n.NoteType == "" {
		n.NoteType = "text"
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (course_id, module_id, title, content, note_type, tags, created_at, updated_at, is_favorite)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.CourseID, n.ModuleID, n.Title, n.Content, n.NoteType, n.Tags, n.CreatedAt, n.UpdatedAt, n.IsFavorite)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(insert note)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperr.NewStorage("result.LastInsertId()", err)
	}
	n.ID = id
	return nil
}

// FindAll returns notes matching the filter, most recently updated first.
func (r *DBRepository) FindAll(ctx context.Context, filter Filter) ([]Note, error) {
	query := "SELECT * FROM notes WHERE 1=1"
	var args []any

	if filter.CourseID != 0 {
		query += " AND course_id = ?"
		args = append(args, filter.CourseID)
	}
	if filter.Search != "" {
		// SQLite LIKE is case-insensitive for ASCII.
		query += " AND (title LIKE ? OR content LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	query += " ORDER BY updated_at DESC, id DESC"

	var notes []Note
	if err := r.db.SelectContext(ctx, &notes, query, args...); err != nil {
		return nil, apperr.NewStorage("db.SelectContext(notes)", err)
	}
	return notes, nil
}

// FindByID returns the note with the given id.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Note, error) {
	var n Note
	err := r.db.GetContext(ctx, &n, "SELECT * FROM notes WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("note", id)
	}
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(note)", err)
	}
	return &n, nil
}

// Update rewrites the editable fields of a note and refreshes updated_at.
func (r *DBRepository) Update(ctx context.Context, n *Note) error {
	if strings.TrimSpace(n.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	n.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`UPDATE notes
		SET course_id = ?, module_id = ?, title = ?, content = ?, note_type = ?, tags = ?, updated_at = ?
		WHERE id = ?`,
		n.CourseID, n.ModuleID, n.Title, n.Content, n.NoteType, n.Tags, n.UpdatedAt, n.ID)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(update note)", err)
	}
	return requireRowAffected(result, n.ID)
}

// SetFavorite toggles the favorite flag of a note.
func (r *DBRepository) SetFavorite(ctx context.Context, noteID int64, favorite bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notes SET is_favorite = ?, updated_at = ? WHERE id = ?",
		favorite, time.Now().UTC(), noteID)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(set note favorite)", err)
	}
	return requireRowAffected(result, noteID)
}

// Delete removes a note.
func (r *DBRepository) Delete(ctx context.Context, noteID int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", noteID)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(delete note)", err)
	}
	return requireRowAffected(result, noteID)
}

func requireRowAffected(result sql.Result, noteID int64) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperr.NewStorage("result.RowsAffected()", err)
	}
	if affected == 0 {
		return apperr.NewNotFound("note", noteID)
	}
	return nil
}
