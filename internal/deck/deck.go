package deck

import (
	"sort"

	"github.com/lcampos/vocadeck/internal/models"
)

// Deck holds the in-memory working set of flashcards, ordered by due
// date ascending, plus the review cursor. It performs no I/O; the
// session coordinator drives it with the store's acknowledged responses.
//
// A Deck is not safe for concurrent use.
type Deck struct {
	cards  []models.Flashcard
	cursor int
}

// New returns an empty Deck.
func New() *Deck {
	return &Deck{cursor: -1}
}

// ReplaceAll swaps in a full listing from the store, re-sorting by due
// date. The cursor is clamped into the new range, or reset to the start
// when it was undefined.
func (d *Deck) ReplaceAll(cards []models.Flashcard) {
	d.cards = make([]models.Flashcard, len(cards))
	copy(d.cards, cards)
	d.sortByDueDate()
	d.clampCursor()
}

// Upsert inserts or replaces a card by id and re-sorts.
func (d *Deck) Upsert(card models.Flashcard) {
	if i := d.indexOf(card.ID); i >= 0 {
		d.cards[i] = card
	} else {
		d.cards = append(d.cards, card)
	}
	d.sortByDueDate()
	d.clampCursor()
}

// Remove deletes a card by id. Removing an unknown id is a no-op. The
// cursor clamps into the remaining range and becomes undefined when the
// Deck empties.
func (d *Deck) Remove(id string) {
	i := d.indexOf(id)
	if i < 0 {
		return
	}
	d.cards = append(d.cards[:i], d.cards[i+1:]...)
	d.clampCursor()
}

// Advance moves the cursor by delta positions, wrapping around the ends.
// It is a no-op when the Deck holds fewer than two cards.
func (d *Deck) Advance(delta int) {
	n := len(d.cards)
	if n < 2 {
		return
	}
	d.cursor = ((d.cursor+delta)%n + n) % n
}

// Current returns the card at the cursor, or nil when the Deck is empty.
func (d *Deck) Current() *models.Flashcard {
	if d.cursor < 0 || d.cursor >= len(d.cards) {
		return nil
	}
	card := d.cards[d.cursor]
	return &card
}

// Get returns the card with the given id, or nil when absent.
func (d *Deck) Get(id string) *models.Flashcard {
	if i := d.indexOf(id); i >= 0 {
		card := d.cards[i]
		return &card
	}
	return nil
}

// Cards returns the cards in due-date order.
func (d *Deck) Cards() []models.Flashcard {
	out := make([]models.Flashcard, len(d.cards))
	copy(out, d.cards)
	return out
}

// Len returns the number of cards in the Deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cursor returns the current cursor position, or -1 when the Deck is empty.
func (d *Deck) Cursor() int {
	return d.cursor
}

func (d *Deck) indexOf(id string) int {
	for i, c := range d.cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// sortByDueDate orders cards most-overdue first. A card that never got a
// due date sorts as zero. The sort must be stable: cards sharing a due
// date keep their prior relative order.
func (d *Deck) sortByDueDate() {
	sort.SliceStable(d.cards, func(i, j int) bool {
		return d.cards[i].DueDate < d.cards[j].DueDate
	})
}

func (d *Deck) clampCursor() {
	switch {
	case len(d.cards) == 0:
		d.cursor = -1
	case d.cursor < 0:
		d.cursor = 0
	case d.cursor >= len(d.cards):
		d.cursor = len(d.cards) - 1
	}
}
