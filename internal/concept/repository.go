// Package concept provides the concept taxonomy and entity-concept links.
package concept

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learntrack/learntrack/internal/apperr"
	"github.com/learntrack/learntrack/internal/database"
	"github.com/learntrack/learntrack/internal/tags"
)

// Concept is a free-standing taxonomy node that any entity can be linked to.
type Concept struct {
	ID              int64         `db:"id"`
	Name            string        `db:"name"`
	Description     string        `db:"description"`
	Category        string        `db:"category"`
	ParentConceptID sql.NullInt64 `db:"parent_concept_id"`
	Color           string        `db:"color"`
	Importance      int           `db:"importance"`
	MasteryLevel    float64       `db:"mastery_level"`
	Tags            tags.List     `db:"tags"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// LinkedConcept is a concept joined with the relationship that ties it to an entity.
type LinkedConcept struct {
	Concept
	RelationshipType string  `db:"relationship_type"`
	Strength         float64 `db:"strength"`
}

// Repository defines operations for managing concepts and entity links.
type Repository interface {
	Create(ctx context.Context, c *Concept) error
	FindAll(ctx context.Context, category string) ([]Concept, error)
	LinkEntity(ctx context.Context, entityType string, entityID, conceptID int64, relationshipType string, strength float64) error
	FindForEntity(ctx context.Context, entityType string, entityID int64) ([]LinkedConcept, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new concept. Concept names are unique; a duplicate name
// returns ConstraintError.
func (r *DBRepository) Create(ctx context.Context, c *Concept) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperr.NewValidation("name", "must not be empty")
	}
	if c.Category == "" {
		c.Category = "general"
	}
	if c.Color == "" {
		c.Color = "#3498db"
	}
	if c.Importance == 0 {
		c.Importance = 1
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO concepts (name, description, category, parent_concept_id, color, importance, mastery_level, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Category, c.ParentConceptID, c.Color, c.Importance, c.MasteryLevel, c.Tags, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if database.IsConstraintViolation(err) {
			return &apperr.ConstraintError{Op: "insert concept", Err: err}
		}
		return apperr.NewStorage("db.ExecContext(insert concept)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperr.NewStorage("result.LastInsertId()", err)
	}
	c.ID = id
	return nil
}

// FindAll returns concepts ordered by importance descending, then name.
// A non-empty category restricts the result to an exact match.
func (r *DBRepository) FindAll(ctx context.Context, category string) ([]Concept, error) {
	query := "SELECT * FROM concepts"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY importance DESC, name ASC"

	var concepts []Concept
	if err := r.db.SelectContext(ctx, &concepts, query, args...); err != nil {
		return nil, apperr.NewStorage("db.SelectContext(concepts)", err)
	}
	return concepts, nil
}

// LinkEntity ties an (entityType, entityID) pair to a concept. Linking the
// same triple again replaces the relationship type and strength, so exactly
// one row exists per triple.
func (r *DBRepository) LinkEntity(ctx context.Context, entityType string, entityID, conceptID int64, relationshipType string, strength float64) error {
	if strings.TrimSpace(entityType) == "" {
		return apperr.NewValidation("entityType", "must not be empty")
	}
	if relationshipType == "" {
		relationshipType = "related"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO entity_concepts (entity_type, entity_id, concept_id, relationship_type, strength, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entityType, entityID, conceptID, relationshipType, strength, time.Now().UTC())
	if err != nil {
		if database.IsConstraintViolation(err) {
			return &apperr.ConstraintError{Op: "link entity to concept", Err: err}
		}
		return apperr.NewStorage("db.ExecContext(link entity to concept)", err)
	}
	return nil
}

// FindForEntity returns the concepts linked to an entity, strongest first,
// then by name.
func (r *DBRepository) FindForEntity(ctx context.Context, entityType string, entityID int64) ([]LinkedConcept, error) {
	var linked []LinkedConcept
	err := r.db.SelectContext(ctx, &linked,
		`SELECT c.*, ec.relationship_type, ec.strength
		FROM concepts c
		JOIN entity_concepts ec ON c.id = ec.concept_id
		WHERE ec.entity_type = ? AND ec.entity_id = ?
		ORDER BY ec.strength DESC, c.name ASC`,
		entityType, entityID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.NewStorage("db.SelectContext(entity concepts)", err)
	}
	return linked, nil
}
