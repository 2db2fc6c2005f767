package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lcampos/vocadeck/internal/errors"
	"github.com/lcampos/vocadeck/internal/logger"
	"github.com/lcampos/vocadeck/internal/models"
)

// Client is the typed CRUD facade over the remote flashcard namespace.
// Every operation maps transport failures to NETWORK_ERROR, non-2xx
// responses to SERVER_ERROR or VALIDATION_ERROR, and malformed success
// bodies to DECODE_ERROR. Operations never retry; a failed call surfaces
// immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a Client for the store at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
		log:        logger.Default().WithPrefix("store"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every card in the namespace. The result is unordered.
// Stored entries that are valid JSON but not valid cards are dropped
// with a warning rather than failing the whole listing.
func (c *Client) List(ctx context.Context) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	log.Debug("listing flashcards")
	start := time.Now()

	body, err := c.do(ctx, http.MethodGet, "/api/flashcards", nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		log.Error("failed to decode listing: %v", err)
		return nil, errors.NewDecodeError(err)
	}

	cards := make([]models.Flashcard, 0, len(raw))
	for _, entry := range raw {
		var card models.Flashcard
		if err := json.Unmarshal(entry, &card); err != nil || card.ID == "" {
			log.Warn("dropping corrupt stored entry: %s", truncate(entry, 120))
			continue
		}
		cards = append(cards, card)
	}

	log.Info("listed %d flashcards in %v (%d dropped)", len(cards), time.Since(start), len(raw)-len(cards))
	return cards, nil
}

// Create submits a draft. The store assigns id, createdAt, dueDate and
// interval; the returned card is the authoritative copy.
func (c *Client) Create(ctx context.Context, draft models.FlashcardDraft) (models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	if strings.TrimSpace(draft.Word) == "" {
		return models.Flashcard{}, errors.NewValidationError("word", "cannot be empty")
	}
	if strings.TrimSpace(draft.Definition) == "" {
		return models.Flashcard{}, errors.NewValidationError("definition", "cannot be empty")
	}

	log.Debug("creating flashcard: word=%q", draft.Word)

	body, err := c.do(ctx, http.MethodPost, "/api/flashcards", draft, http.StatusCreated)
	if err != nil {
		return models.Flashcard{}, err
	}

	var card models.Flashcard
	if err := json.Unmarshal(body, &card); err != nil {
		log.Error("failed to decode created flashcard: %v", err)
		return models.Flashcard{}, errors.NewDecodeError(err)
	}

	log.Info("flashcard created: id=%s", card.ID)
	return card, nil
}

// Update replaces a card wholesale by id. Last write wins: there is no
// version check, and two concurrent updates silently clobber each other.
func (c *Client) Update(ctx context.Context, card models.Flashcard) (models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("store")

	if card.ID == "" {
		return models.Flashcard{}, errors.NewValidationError("id", "cannot be empty")
	}

	log.Debug("updating flashcard: id=%s, interval=%.2f", card.ID, card.Interval)

	body, err := c.do(ctx, http.MethodPut, "/api/flashcards/"+card.ID, card, http.StatusOK)
	if err != nil {
		return models.Flashcard{}, err
	}

	var updated models.Flashcard
	if err := json.Unmarshal(body, &updated); err != nil {
		log.Error("failed to decode updated flashcard: %v", err)
		return models.Flashcard{}, errors.NewDecodeError(err)
	}

	log.Info("flashcard updated: id=%s", updated.ID)
	return updated, nil
}

// Delete removes a card by id. A not-found answer from the store is
// treated as success, so repeated deletes are safe.
func (c *Client) Delete(ctx context.Context, id string) error {
	log := logger.FromContext(ctx).WithPrefix("store")

	if id == "" {
		return errors.NewValidationError("id", "cannot be empty")
	}

	log.Debug("deleting flashcard: id=%s", id)

	_, err := c.do(ctx, http.MethodDelete, "/api/flashcards/"+id, nil, http.StatusNoContent)
	if appErr, ok := err.(*errors.AppError); ok && appErr.Status == http.StatusNotFound {
		log.Debug("flashcard already absent: id=%s", id)
		return nil
	}
	if err != nil {
		return err
	}

	log.Info("flashcard deleted: id=%s", id)
	return nil
}

// do issues one request and returns the response body when the status
// matches want. Any other status is translated into the error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, payload any, want int) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("store")
	url := c.baseURL + path

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		log.Error("failed to create request: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("%s %s transport failure: %v", method, path, err)
		return nil, errors.NewNetworkError(err)
	}
	defer resp.Body.Close()

	log.Debug("%s %s responded in %v, status=%d", method, path, time.Since(start), resp.StatusCode)

	if resp.StatusCode != want {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errorFromResponse(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("failed to read response body: %v", err)
		return nil, errors.NewNetworkError(err)
	}
	return body, nil
}

// errorFromResponse extracts a message from an error response body. JSON
// bodies carry the message in an "error" field; anything else is used as
// raw text.
func errorFromResponse(status int, body []byte) *errors.AppError {
	message := strings.TrimSpace(string(body))
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		message = parsed.Error
	}
	if message == "" {
		message = fmt.Sprintf("store answered with status %d", status)
	}

	if status == http.StatusBadRequest {
		return &errors.AppError{Code: errors.ErrCodeValidation, Message: message, Status: status}
	}
	if status == http.StatusNotFound {
		return &errors.AppError{Code: errors.ErrCodeNotFound, Message: message, Status: status}
	}
	return errors.NewServerError(status, message)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
