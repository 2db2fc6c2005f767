package scheduler

import (
	"github.com/lcampos/vocadeck/internal/models"
)

// ApplyReview computes a card's next scheduling state from a review
// outcome. A successful review doubles the interval (first success sets
// it to one day); a failed review halves it toward zero, where zero
// means "due again immediately".
//
// now is Unix milliseconds and must be supplied by the caller; the
// function performs no I/O and no clock reads, so the same
// (card, success, now) always yields the same result.
func ApplyReview(card models.Flashcard, success bool, now int64) models.Flashcard {
	interval := card.Interval

	if success {
		if interval == 0 {
			interval = 1
		} else {
			interval = interval * 2
		}
		if interval < 1 {
			interval = 1
		}
	} else {
		interval = interval / 2
		if interval < 0 {
			interval = 0
		}
	}

	card.Interval = interval
	card.DueDate = now + int64(interval*models.MillisPerDay)
	card.LastReviewedAt = now
	return card
}
