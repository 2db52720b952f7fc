// Package flashcard provides flashcard storage and spaced-repetition review scheduling.
package flashcard

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/learntrack/learntrack/internal/apperr"
)

// Flashcard represents a question/answer card with its scheduling state.
type Flashcard struct {
	ID             int64         `db:"id"`
	CourseID       int64         `db:"course_id"`
	NoteID         sql.NullInt64 `db:"note_id"`
	Question       string        `db:"question"`
	Answer         string        `db:"answer"`
	Difficulty     int           `db:"difficulty"`
	TimesReviewed  int           `db:"times_reviewed"`
	CorrectAnswers int           `db:"correct_answers"`
	LastReviewed   sql.NullTime  `db:"last_reviewed"`
	NextReview     sql.NullTime  `db:"next_review"`
	IntervalDays   int           `db:"interval_days"`
	EaseFactor     float64       `db:"ease_factor"`
	CreatedAt      time.Time     `db:"created_at"`
}

// Repository defines operations for managing flashcards.
type Repository interface {
	Create(ctx context.Context, c *Flashcard) error
	FindByID(ctx context.Context, id int64) (*Flashcard, error)
	FindDue(ctx context.Context, courseID int64, limit int) ([]Flashcard, error)
	Review(ctx context.Context, id int64, rating Rating) (*Flashcard, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Create inserts a new flashcard. A card starts unreviewed with the default
// ease factor, so it is immediately due.
func (r *DBRepository) Create(ctx context.Context, c *Flashcard) error {
	if strings.TrimSpace(c.Question) == "" {
		return apperr.NewValidation("question", "must not be empty")
	}
	if strings.TrimSpace(c.Answer) == "" {
		return apperr.NewValidation("answer", "must not be empty")
	}
	if c.Difficulty == 0 {
		c.Difficulty = 3
	}
	if c.IntervalDays == 0 {
		c.IntervalDays = 1
	}
	if c.EaseFactor == 0 {
		c.EaseFactor = DefaultEaseFactor
	}
	c.CreatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx,
		`INSERT INTO flashcards (course_id, note_id, question, answer, difficulty, interval_days, ease_factor, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.CourseID, c.NoteID, c.Question, c.Answer, c.Difficulty, c.IntervalDays, c.EaseFactor, c.CreatedAt)
	if err != nil {
		return apperr.NewStorage("db.ExecContext(insert flashcard)", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return apperr.NewStorage("result.LastInsertId()", err)
	}
	c.ID = id
	return nil
}

// FindByID returns the flashcard with the given id.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Flashcard, error) {
	var c Flashcard
	err := r.db.GetContext(ctx, &c, "SELECT * FROM flashcards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.NewNotFound("flashcard", id)
	}
	if err != nil {
		return nil, apperr.NewStorage("db.GetContext(flashcard)", err)
	}
	return &c, nil
}

// FindDue returns cards whose next review is unset or not in the future,
// never-reviewed cards first, then least recently reviewed, capped at limit.
// A zero courseID spans all courses.
func (r *DBRepository) FindDue(ctx context.Context, courseID int64, limit int) ([]Flashcard, error) {
	query := "SELECT * FROM flashcards WHERE (next_review IS NULL OR next_review <= ?)"
	args := []any{time.Now().UTC()}

	if courseID != 0 {
		query += " AND course_id = ?"
		args = append(args, courseID)
	}
	query += " ORDER BY last_reviewed ASC LIMIT ?"
	args = append(args, limit)

	var cards []Flashcard
	if err := r.db.SelectContext(ctx, &cards, query, args...); err != nil {
		return nil, apperr.NewStorage("db.SelectContext(due flashcards)", err)
	}
	return cards, nil
}

// Review records a rating for a card and persists the recomputed scheduling
// state. It returns the card with its new interval and review timestamps.
func (r *DBRepository) Review(ctx context.Context, id int64, rating Rating) (*Flashcard, error) {
	card, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := Reschedule(card, rating, time.Now().UTC()); err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx,
		`UPDATE flashcards
		SET times_reviewed = ?, correct_answers = ?, last_reviewed = ?, next_review = ?,
			interval_days = ?, ease_factor = ?
		WHERE id = ?`,
		card.TimesReviewed, card.CorrectAnswers, card.LastReviewed, card.NextReview,
		card.IntervalDays, card.EaseFactor, card.ID)
	if err != nil {
		return nil, apperr.NewStorage("db.ExecContext(update flashcard schedule)", err)
	}
	return card, nil
}
