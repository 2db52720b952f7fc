package mindmap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learntrack/learntrack/internal/apperr"
)

// Record is a stored mind map row. MapData carries the serialized document.
type Record struct {
	ID          int64         `db:"id"`
	CourseID    sql.NullInt64 `db:"course_id"`
	Title       string        `db:"title"`
	Description string        `db:"description"`
	MapData     string        `db:"map_data"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
	IsTemplate  bool          `db:"is_template"`
}

// Map deserializes the record's document.
func (rec *Record) Map() (*Map, error) {
	m := NewMap()
	if rec.MapData == "" {
		return m, nil
	}
	if err := m.UnmarshalJSON([]byte(rec.MapData)); err != nil {
		return nil, fmt.Errorf("mindmap.Record.Map(%d) > %w", rec.ID, err)
	}
	return m, nil
}

// Repository defines operations for stored mind maps.
type Repository interface {
	Save(ctx context.Context, rec *Record, m *Map) error
	FindByID(ctx context.Context, id int64) (*Record, error)
	FindByCourse(ctx context.Context, courseID int64) ([]Record, error)
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

// Save persists the map document under the record. A zero id inserts a new
// row and fills rec.ID; otherwise the existing row is updated.
func (r *DBRepository) Save(ctx context.Context, rec *Record, m *Map) error {
	if strings.TrimSpace(rec.Title) == "" {
		return apperr.NewValidation("title", "must not be empty")
	}
	data, err := m.MarshalJSON()
	if err != nil {
		return fmt.Errorf("db.SaveMindMap(%s) > %w", rec.Title, err)
	}
	rec.MapData = string(data)
	rec.UpdatedAt = time.Now().UTC()

	if rec.ID == 0 {
		rec.CreatedAt = rec.UpdatedAt
		result, err := r.db.ExecContext(ctx,
			`INSERT INTO mind_maps (course_id, title, description, map_data, created_at, updated_at, is_template)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.CourseID, rec.Title, rec.Description, rec.MapData, rec.CreatedAt, rec.UpdatedAt, rec.IsTemplate)
		if err != nil {
			return fmt.Errorf("db.SaveMindMap(%s) > %w", rec.Title, err)
		}
		rec.ID, err = result.LastInsertId()
		if err != nil {
			return fmt.Errorf("db.SaveMindMap(%s) > %w", rec.Title, err)
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE mind_maps SET course_id = ?, title = ?, description = ?, map_data = ?, updated_at = ?, is_template = ?
		WHERE id = ?`,
		rec.CourseID, rec.Title, rec.Description, rec.MapData, rec.UpdatedAt, rec.IsTemplate, rec.ID)
	if err != nil {
		return fmt.Errorf("db.SaveMindMap(%d) > %w", rec.ID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db.SaveMindMap(%d) > %w", rec.ID, err)
	}
	if affected == 0 {
		return apperr.NewNotFound("mind map", rec.ID)
	}
	return nil
}

// FindByID returns a stored mind map.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Record, error) {
	var rec Record
	err := r.db.GetContext(ctx, &rec, `SELECT * FROM mind_maps WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("mind map", id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.FindMindMap(%d) > %w", id, err)
	}
	return &rec, nil
}

// FindByCourse returns all mind maps attached to a course, newest first.
func (r *DBRepository) FindByCourse(ctx context.Context, courseID int64) ([]Record, error) {
	var recs []Record
	err := r.db.SelectContext(ctx, &recs,
		`SELECT * FROM mind_maps WHERE course_id = ? ORDER BY updated_at DESC, id DESC`, courseID)
	if err != nil {
		return nil, fmt.Errorf("db.FindMindMapsByCourse(%d) > %w", courseID, err)
	}
	return recs, nil
}

// Delete removes a stored mind map.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM mind_maps WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("db.DeleteMindMap(%d) > %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("db.DeleteMindMap(%d) > %w", id, err)
	}
	if affected == 0 {
		return apperr.NewNotFound("mind map", id)
	}
	return nil
}
