package session

import (
	"context"
	"time"

	"github.com/lcampos/vocadeck/internal/deck"
	"github.com/lcampos/vocadeck/internal/logger"
	"github.com/lcampos/vocadeck/internal/models"
	"github.com/lcampos/vocadeck/internal/scheduler"
	"github.com/lcampos/vocadeck/internal/store"
)

// Coordinator sequences store calls and Deck mutations so the Deck
// always reflects the store's last acknowledged response. Mutations are
// never applied optimistically: the copy the store returns is the one
// that lands in the Deck, so client and store cannot diverge on
// store-assigned ids or timestamps.
//
// A failed operation leaves the Deck exactly as it was and retains the
// error message until the next successful operation or an explicit
// Dismiss.
type Coordinator struct {
	store   store.ClientInterface
	deck    *deck.Deck
	now     func() int64
	log     *logger.Logger
	lastErr string
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithClock replaces the wall clock. Tests use this to pin review times.
func WithClock(now func() int64) Option {
	return func(c *Coordinator) {
		c.now = now
	}
}

// New creates a Coordinator over the given store client.
func New(client store.ClientInterface, opts ...Option) *Coordinator {
	c := &Coordinator{
		store: client,
		deck:  deck.New(),
		now:   func() int64 { return time.Now().UnixMilli() },
		log:   logger.Default().WithPrefix("session"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Deck exposes the coordinator's card state for reading.
func (c *Coordinator) Deck() *deck.Deck {
	return c.deck
}

// LastError returns the most recent operation failure, or "" when the
// last operation succeeded or the error was dismissed.
func (c *Coordinator) LastError() string {
	return c.lastErr
}

// Dismiss clears the retained error message.
func (c *Coordinator) Dismiss() {
	c.lastErr = ""
}

// Load rebuilds the Deck from a full store listing. On failure the Deck
// keeps its previous contents so a transient network blip does not
// destroy a working view.
func (c *Coordinator) Load(ctx context.Context) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	cards, err := c.store.List(ctx)
	if err != nil {
		log.Error("load failed: %v", err)
		return c.fail(err)
	}

	c.deck.ReplaceAll(cards)
	log.Info("deck loaded with %d cards", c.deck.Len())
	return c.ok()
}

// Add creates a card from a draft and inserts the store's authoritative
// copy into the Deck.
func (c *Coordinator) Add(ctx context.Context, draft models.FlashcardDraft) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	card, err := c.store.Create(ctx, draft)
	if err != nil {
		log.Error("add failed: %v", err)
		return c.fail(err)
	}

	c.deck.Upsert(card)
	log.Info("card added: id=%s word=%q", card.ID, card.Word)
	return c.ok()
}

// Review applies one review outcome to a card: the scheduler computes
// the next state, the store persists it, and only the acknowledged copy
// is applied locally. Reviewing an id no longer in the Deck is a no-op;
// the card may have been deleted concurrently.
func (c *Coordinator) Review(ctx context.Context, id string, success bool) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	card := c.deck.Get(id)
	if card == nil {
		log.Debug("review of unknown card ignored: id=%s", id)
		return nil
	}

	next := scheduler.ApplyReview(*card, success, c.now())

	updated, err := c.store.Update(ctx, next)
	if err != nil {
		log.Error("review failed, card left unchanged: id=%s: %v", id, err)
		return c.fail(err)
	}

	c.deck.Upsert(updated)
	// Move on to the next card, unless a concurrent delete shrank the
	// deck to a single card in the meantime.
	if c.deck.Len() > 1 {
		c.deck.Advance(1)
	}
	log.Info("card reviewed: id=%s success=%t interval=%.2f", id, success, updated.Interval)
	return c.ok()
}

// Remove deletes a card from the store, then from the Deck.
func (c *Coordinator) Remove(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("session")

	if err := c.store.Delete(ctx, id); err != nil {
		log.Error("remove failed: id=%s: %v", id, err)
		return c.fail(err)
	}

	c.deck.Remove(id)
	log.Info("card removed: id=%s", id)
	return c.ok()
}

func (c *Coordinator) fail(err error) error {
	c.lastErr = err.Error()
	return err
}

func (c *Coordinator) ok() error {
	c.lastErr = ""
	return nil
}
