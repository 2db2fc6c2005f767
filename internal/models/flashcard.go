package models

// Timestamps are Unix milliseconds throughout, matching the wire format
// of the flashcard store.

const MillisPerDay = 86_400_000

// Flashcard is the single entity of the system: a word/definition pair
// with review-scheduling metadata. A card exists fully formed or not at
// all; the store assigns ID, CreatedAt, DueDate and Interval at creation.
type Flashcard struct {
	ID              string  `json:"id"`
	Word            string  `json:"word"`
	Definition      string  `json:"definition"`
	ExampleSentence string  `json:"exampleSentence,omitempty"`
	CreatedAt       int64   `json:"createdAt"`
	LastReviewedAt  int64   `json:"lastReviewedAt,omitempty"`
	DueDate         int64   `json:"dueDate"`
	Interval        float64 `json:"interval"`
}

// FlashcardDraft is the client submission for a new card. Everything
// else is assigned authoritatively by the store.
type FlashcardDraft struct {
	Word            string `json:"word"`
	Definition      string `json:"definition"`
	ExampleSentence string `json:"exampleSentence,omitempty"`
}
