package flashcard

import "math/rand"

// ReviewSession presents a batch of due cards in randomized order without
// replacement: each card is seen at most once per session.
type ReviewSession struct {
	cards    []Flashcard
	position int
	Reviewed int
	Correct  int
}

// NewReviewSession shuffles the given due cards into a review order.
func NewReviewSession(cards []Flashcard) *ReviewSession {
	shuffled := make([]Flashcard, len(cards))
	copy(shuffled, cards)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &ReviewSession{cards: shuffled}
}

// Next returns the next unseen card, or false when the session is exhausted.
func (s *ReviewSession) Next() (*Flashcard, bool) {
	if s.position >= len(s.cards) {
		return nil, false
	}
	card := &s.cards[s.position]
	s.position++
	return card, true
}

// Record tallies a rating for session statistics. Easy counts as a correct
// self-reported answer, matching the accuracy metric shown after a session.
func (s *ReviewSession) Record(rating Rating) {
	s.Reviewed++
	if rating == RatingEasy {
		s.Correct++
	}
}

// Remaining reports how many cards are left in the session.
func (s *ReviewSession) Remaining() int {
	return len(s.cards) - s.position
}
