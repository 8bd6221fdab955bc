package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/vincent-petithory/dataurl"

	"github.com/JaimeStill/cmyk-lab/internal/conversions"
)

// DefaultAllowedTypes are the content types Add accepts.
var DefaultAllowedTypes = []string{"image/jpeg", "image/jpg", "image/png"}

const fallbackMessage = "Conversion failed"

// Converter sends one source image for conversion.
type Converter interface {
	Convert(ctx context.Context, src conversions.Source) (*conversions.Result, error)
}

// Session holds an ordered list of uploads. The mutex guards state
// transitions only and is never held across a Converter call.
type Session struct {
	conv    Converter
	logger  *slog.Logger
	allowed []string

	mu         sync.Mutex
	items      []*Item
	generation uint64
	processing bool
}

// NewSession creates an empty session that converts through conv.
func NewSession(conv Converter, logger *slog.Logger) *Session {
	return &Session{
		conv:    conv,
		logger:  logger.With("system", "uploads"),
		allowed: DefaultAllowedTypes,
	}
}

// Add appends a pending upload. Files outside the allow-list are rejected
// and never reach the converter.
func (s *Session) Add(name, contentType string, data []byte) (Item, error) {
	ct := conversions.NormalizeType(contentType)
	if !slices.Contains(s.allowed, ct) {
		return Item{}, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, name, contentType)
	}

	item := &Item{
		ID:          uuid.NewString(),
		Name:        name,
		ContentType: ct,
		Data:        data,
		Status:      StatusPending,
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()

	s.logger.Debug("upload added", "id", item.ID, "name", name, "content_type", ct)
	return *item, nil
}

// Items returns a snapshot of every upload in insertion order.
func (s *Session) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	for i, item := range s.items {
		out[i] = *item
	}
	return out
}

// Item returns a snapshot of the upload with id.
func (s *Session) Item(id string) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return Item{}, ErrNotFound
	}
	return *item, nil
}

// Processing reports whether ConvertAll is running.
func (s *Session) Processing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.processing
}

// ConvertOne sends a pending or failed upload to the converter.
// If the session is cleared before the call returns, the outcome is
// dropped and ErrCleared is returned.
func (s *Session) ConvertOne(ctx context.Context, id string) error {
	s.mu.Lock()
	item := s.find(id)
	if item == nil {
		s.mu.Unlock()
		return ErrNotFound
	}
	if !item.Status.Convertible() {
		status := item.Status
		s.mu.Unlock()
		return fmt.Errorf("%w: %s is %s", ErrNotConvertible, item.Name, status)
	}

	item.Status = StatusProcessing
	item.Error = ""
	gen := s.generation
	src := conversions.Source{
		Filename:    item.Name,
		ContentType: item.ContentType,
		Data:        item.Data,
	}
	s.mu.Unlock()

	result, convErr := s.conv.Convert(ctx, src)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generation != gen {
		s.logger.Debug("discarding outcome for cleared upload", "id", id)
		return ErrCleared
	}

	if convErr != nil {
		item.Status = StatusError
		item.Error = errorMessage(convErr)
		s.logger.Warn("conversion failed", "id", id, "name", item.Name, "error", convErr)
		return convErr
	}

	item.Status = StatusCompleted
	item.Result = result
	s.logger.Info("conversion completed", "id", id, "name", item.Name, "filename", result.Filename)
	return nil
}

// ConvertAll converts every upload that is pending when the call starts,
// one at a time in list order. A failed upload does not stop the batch.
func (s *Session) ConvertAll(ctx context.Context) (BatchSummary, error) {
	s.mu.Lock()
	if s.processing {
		s.mu.Unlock()
		return BatchSummary{}, ErrBatchInProgress
	}
	s.processing = true

	var ids []string
	for _, item := range s.items {
		if item.Status == StatusPending {
			ids = append(ids, item.ID)
		}
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.processing = false
		s.mu.Unlock()
	}()

	var summary BatchSummary
	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			summary.Skipped += len(ids) - i
			return summary, err
		}

		err := s.ConvertOne(ctx, id)
		switch {
		case err == nil:
			summary.Completed++
		case errors.Is(err, ErrNotFound), errors.Is(err, ErrCleared), errors.Is(err, ErrNotConvertible):
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	s.logger.Info(
		"batch finished",
		"completed", summary.Completed,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
	)
	return summary, nil
}

// Download writes the TIFF of a completed upload to w and returns its
// output filename.
func (s *Session) Download(id string, w io.Writer) (string, error) {
	s.mu.Lock()
	item := s.find(id)
	if item == nil {
		s.mu.Unlock()
		return "", ErrNotFound
	}
	if item.Status != StatusCompleted || item.Result == nil {
		s.mu.Unlock()
		return "", fmt.Errorf("%w: %s", ErrNotCompleted, item.Name)
	}
	result := item.Result
	s.mu.Unlock()

	payload, err := dataurl.DecodeString(result.DownloadData)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if ct := payload.ContentType(); ct != "image/tiff" {
		return "", fmt.Errorf("%w: got %s", ErrInvalidPayload, ct)
	}

	if _, err := w.Write(payload.Data); err != nil {
		return "", fmt.Errorf("write %s: %w", result.Filename, err)
	}
	return result.Filename, nil
}

// Clear drops every upload and its data. Conversions still in flight
// finish but their outcomes are discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		item.Data = nil
		item.Result = nil
	}
	s.items = nil
	s.generation++
}

func (s *Session) find(id string) *Item {
	for _, item := range s.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallbackMessage
}
