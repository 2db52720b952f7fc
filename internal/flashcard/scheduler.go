package flashcard

import (
	"database/sql"
	"math"
	"time"

	"github.com/learntrack/learntrack/internal/apperr"
)

// Ease factor bounds.
const (
	DefaultEaseFactor = 2.5
	MinEaseFactor     = 1.3
	MaxEaseFactor     = 2.5
)

// Rating is the self-reported outcome of a single card review.
type Rating string

// Recognized ratings.
const (
	RatingHard   Rating = "hard"
	RatingMedium Rating = "medium"
	RatingEasy   Rating = "easy"
)

// Reschedule recomputes a card's scheduling state in place after a review at
// the given time.
//
// A hard rating resets the interval to one day and lowers the ease factor; a
// medium rating grows the interval by a modest multiplier with the ease factor
// unchanged; an easy rating grows the interval by the ease factor and raises
// it slightly. The interval never drops below one day, and the next review is
// always the review time plus the interval.
func Reschedule(card *Flashcard, rating Rating, reviewedAt time.Time) error {
	interval := card.IntervalDays
	if interval < 1 {
		interval = 1
	}
	ease := card.EaseFactor
	if ease == 0 {
		ease = DefaultEaseFactor
	}

	switch rating {
	case RatingHard:
		interval = 1
		ease = math.Max(ease-0.2, MinEaseFactor)
	case RatingMedium:
		interval = int(math.Ceil(float64(interval) * 1.2))
	case RatingEasy:
		interval = int(math.Ceil(float64(interval) * ease))
		ease = math.Min(ease+0.1, MaxEaseFactor)
		card.CorrectAnswers++
	default:
		return apperr.NewValidation("rating", "must be hard, medium, or easy")
	}

	if interval < 1 {
		interval = 1
	}

	card.TimesReviewed++
	card.IntervalDays = interval
	card.EaseFactor = ease
	card.LastReviewed = sql.NullTime{Time: reviewedAt, Valid: true}
	card.NextReview = sql.NullTime{Time: reviewedAt.AddDate(0, 0, interval), Valid: true}
	return nil
}
