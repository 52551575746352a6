// internal/domain/assistant/service.go
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/preview"
	"github.com/sirupsen/logrus"
)

// Service runs assistant operations against stored sessions. Each call
// applies one operation inside an optimistic store update, so overlapping
// requests on one session do not lose writes. A failed precondition leaves
// the stored session untouched.
type Service struct {
	store       Store
	resolver    *preview.Resolver
	logger      *logrus.Logger
	maxQuantity int
	ttl         time.Duration
	now         func() time.Time
}

// NewService creates a new assistant service
func NewService(store Store, resolver *preview.Resolver, logger *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:       store,
		resolver:    resolver,
		logger:      logger,
		maxQuantity: cfg.Widget.MaxQuantity,
		ttl:         cfg.Session.TTL,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// MaxQuantity is the largest quantity a line can have
func (s *Service) MaxQuantity() int { return s.maxQuantity }

// Get returns the session, or a fresh one if none is stored
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return NewSession(sessionID, s.now(), s.ttl), nil
	}
	return session, err
}

// Paste records pasted text
func (s *Service) Paste(ctx context.Context, sessionID, text string) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		session.PasteCode(text)
		return nil
	})
}

// SelectSize records the chosen size
func (s *Service) SelectSize(ctx context.Context, sessionID, size string) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		return session.SelectSize(size)
	})
}

// SelectQuantity records the chosen quantity
func (s *Service) SelectQuantity(ctx context.Context, sessionID string, quantity int) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		return session.SelectQuantity(quantity, s.maxQuantity)
	})
}

// Add puts the current selection into the cart
func (s *Service) Add(ctx context.Context, sessionID string) (*Session, *Line, error) {
	var added *Line
	session, err := s.update(ctx, sessionID, func(session *Session) error {
		line, err := session.AddToCart(uuid.New().String(), s.now())
		added = line
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"code":       added.Code,
		"size":       added.Size,
		"quantity":   added.Quantity,
	}).Debug("Assistant line added")

	return session, added, nil
}

// StartEdit loads a line into the form
func (s *Service) StartEdit(ctx context.Context, sessionID, lineID string) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		return session.StartEdit(lineID)
	})
}

// SaveEdit applies the form to the line being edited
func (s *Service) SaveEdit(ctx context.Context, sessionID string) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		_, err := session.SaveEdit()
		return err
	})
}

// CancelEdit abandons the edit in progress
func (s *Service) CancelEdit(ctx context.Context, sessionID string) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		session.CancelEdit()
		return nil
	})
}

// Remove deletes a line
func (s *Service) Remove(ctx context.Context, sessionID, lineID string) (*Session, error) {
	return s.update(ctx, sessionID, func(session *Session) error {
		return session.RemoveLine(lineID)
	})
}

// PreviewCode resolves the preview image of an item code
func (s *Service) PreviewCode(code string) (*preview.ImageDescriptor, error) {
	image, err := s.resolver.Resolve(code)
	if errors.Is(err, preview.ErrNotFound) {
		return nil, ErrImageNotFound
	}
	return image, err
}

// PreviewLine resolves the preview image of a cart line
func (s *Service) PreviewLine(ctx context.Context, sessionID, lineID string) (*preview.ImageDescriptor, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	line, err := session.Line(lineID)
	if err != nil {
		return nil, err
	}
	return s.PreviewCode(line.Code)
}

// Lines returns the lines ready for checkout
func (s *Service) Lines(ctx context.Context, sessionID string) ([]Line, error) {
	session, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.Checkout()
}

// Reset empties the session after a completed checkout
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID)
}

func (s *Service) update(ctx context.Context, sessionID string, apply func(*Session) error) (*Session, error) {
	return s.store.Update(ctx, sessionID, func(session *Session) (*Session, error) {
		if session == nil {
			session = NewSession(sessionID, s.now(), s.ttl)
		}
		if err := apply(session); err != nil {
			return nil, err
		}
		session.UpdatedAt = s.now()
		return session, nil
	})
}
