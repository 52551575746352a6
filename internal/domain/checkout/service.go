// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pressart/storefront-api/internal/domain/assistant"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/preview"
	"github.com/pressart/storefront-api/internal/domain/pricing"
	"github.com/pressart/storefront-api/internal/pkg/email"
	"github.com/pressart/storefront-api/internal/pkg/notify"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// LineSource supplies and clears the assistant lines of a session
type LineSource interface {
	Lines(ctx context.Context, sessionID string) ([]assistant.Line, error)
	Reset(ctx context.Context, sessionID string) error
}

// CartSyncer persists checked-out lines in the customer's cart
type CartSyncer interface {
	SyncLocal(ctx context.Context, userID uint, items []cart.LocalItem) (*cart.Cart, int, error)
}

// Previewer resolves item codes to images
type Previewer interface {
	Resolve(code string) (*preview.ImageDescriptor, error)
}

// Mailer sends checkout emails
type Mailer interface {
	Enabled() bool
	SendCheckoutRequest(ctx context.Context, data email.CheckoutData) error
	SendCheckoutReceipt(ctx context.Context, data email.CheckoutData) error
}

// Alerter sends the shop-owner chat alert
type Alerter interface {
	NotifyCheckout(ctx context.Context, alert notify.CheckoutAlert) error
}

// Customer is the signed-in user checking out
type Customer struct {
	ID    uint
	Name  string
	Email string
}

// Result is returned after a successful checkout
type Result struct {
	Reference string       `json:"reference"`
	Message   string       `json:"message"`
	Received  int          `json:"received"`
	Cart      cart.Summary `json:"cart"`
	Notified  bool         `json:"notified"`
}

// Service hands the assistant's lines over to the cart store and notifies the shop
type Service struct {
	lines     LineSource
	carts     CartSyncer
	prices    *pricing.Book
	previewer Previewer
	mailer    Mailer
	alerter   Alerter
	siteURL   string
	logger    *logrus.Logger
	now       func() time.Time
}

// NewService creates a new checkout service
func NewService(lines LineSource, carts CartSyncer, prices *pricing.Book, previewer Previewer, mailer Mailer, alerter Alerter, siteURL string, logger *logrus.Logger) *Service {
	return &Service{
		lines:     lines,
		carts:     carts,
		prices:    prices,
		previewer: previewer,
		mailer:    mailer,
		alerter:   alerter,
		siteURL:   strings.TrimRight(siteURL, "/"),
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Checkout moves the session's lines into the customer's cart, clears the
// session and notifies the shop. Notification failures are logged and
// reported in the result; they do not undo the checkout.
func (s *Service) Checkout(ctx context.Context, sessionID string, customer Customer) (*Result, error) {
	lines, err := s.lines.Lines(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items := make([]cart.LocalItem, 0, len(lines))
	for _, line := range lines {
		item, err := s.localItem(line)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	c, received, err := s.carts.SyncLocal(ctx, customer.ID, items)
	if err != nil {
		return nil, fmt.Errorf("failed to sync checkout into cart: %w", err)
	}

	reference := newReference()
	notified := true
	if err := s.notify(ctx, reference, customer, items); err != nil {
		notified = false
		s.logger.WithFields(logrus.Fields{
			"reference": reference,
			"user_id":   customer.ID,
			"error":     err.Error(),
		}).Warn("Checkout notification failed")
	}

	if err := s.lines.Reset(ctx, sessionID); err != nil {
		s.logger.WithFields(logrus.Fields{
			"reference":  reference,
			"session_id": sessionID,
			"error":      err.Error(),
		}).Warn("Failed to clear assistant session after checkout")
	}

	s.logger.WithFields(logrus.Fields{
		"reference": reference,
		"user_id":   customer.ID,
		"lines":     len(items),
	}).Info("Checkout completed")

	return &Result{
		Reference: reference,
		Message:   assistant.MsgCheckedOut,
		Received:  received,
		Cart:      c.ToSummary(),
		Notified:  notified,
	}, nil
}

func (s *Service) localItem(line assistant.Line) (cart.LocalItem, error) {
	size, ok := pricing.SizeCode(line.Size)
	if !ok {
		return cart.LocalItem{}, assistant.ErrUnknownSize
	}
	total, err := s.prices.LineTotal(size, line.Quantity)
	if err != nil {
		return cart.LocalItem{}, assistant.ErrInvalidQuantity
	}
	price, _ := s.prices.UnitPrice(size)
	return cart.LocalItem{
		Code:     line.Code,
		Size:     size,
		Quantity: line.Quantity,
		Price:    price,
		Total:    total,
	}, nil
}

func (s *Service) notify(ctx context.Context, reference string, customer Customer, items []cart.LocalItem) error {
	data := email.CheckoutData{
		EmailTemplateData: email.EmailTemplateData{UserName: customer.Name, UserEmail: customer.Email},
		Reference:         reference,
		PlacedAt:          s.now().Format("January 2, 2006 15:04 MST"),
		TotalItems:        len(items),
	}
	alert := notify.CheckoutAlert{
		Reference: reference,
		Customer:  customer.Name,
		Email:     customer.Email,
	}

	var amount int64
	for _, item := range items {
		amount += item.Total
		line := email.CheckoutLine{
			Code:      item.Code,
			Size:      pricing.SizeLabel(item.Size),
			Quantity:  item.Quantity,
			UnitPrice: s.prices.Format(item.Price),
			Total:     s.prices.Format(item.Total),
		}
		if image, err := s.previewer.Resolve(item.Code); err == nil {
			line.ImageURL = s.imageURL(image.Path)
		}
		data.Lines = append(data.Lines, line)
		alert.Lines = append(alert.Lines, notify.CheckoutLine{
			Code:     line.Code,
			Size:     line.Size,
			Quantity: line.Quantity,
			Total:    line.Total,
		})
	}
	data.TotalAmount = s.prices.Format(amount)
	alert.TotalAmount = data.TotalAmount

	sends := []func(context.Context) error{
		func(ctx context.Context) error { return s.alerter.NotifyCheckout(ctx, alert) },
	}
	if s.mailer.Enabled() {
		sends = append(sends, func(ctx context.Context) error { return s.mailer.SendCheckoutRequest(ctx, data) })
		if customer.Email != "" {
			sends = append(sends, func(ctx context.Context) error { return s.mailer.SendCheckoutReceipt(ctx, data) })
		}
	}

	// A plain group: one failed channel must not cancel the others.
	var g errgroup.Group
	errs := make([]error, len(sends))
	for i, send := range sends {
		i, send := i, send
		g.Go(func() error {
			errs[i] = send(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// imageURL makes asset paths absolute for emails. Prefixes that are already
// absolute URLs are kept as they are.
func (s *Service) imageURL(path string) string {
	if strings.HasPrefix(path, "/") {
		return s.siteURL + path
	}
	return path
}

// newReference returns a short human-readable request reference
func newReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PA-" + strings.ToUpper(id[:8])
}
