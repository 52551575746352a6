// internal/domain/cart/service.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressart/storefront-api/internal/domain/pricing"
	"github.com/sirupsen/logrus"
)

// Pricer supplies unit prices when a request does not carry one
type Pricer interface {
	UnitPrice(size string) (int64, error)
}

// Service handles cart business logic
type Service struct {
	repo   Repository
	prices Pricer
	logger *logrus.Logger
	now    func() time.Time
}

// NewService creates a new cart service
func NewService(repo Repository, prices Pricer, logger *logrus.Logger) *Service {
	return &Service{
		repo:   repo,
		prices: prices,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// AddItemRequest represents add to cart request. Price is in minor units
// and defaults to the price book when omitted.
type AddItemRequest struct {
	Code     string `json:"code" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"min=0"`
}

// UpdateItemRequest represents update cart item request
type UpdateItemRequest struct {
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
	Price    int64  `json:"price" binding:"min=0"`
}

// LocalItem is an item kept by the browser before sign-in
type LocalItem struct {
	Code     string `json:"code"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Total    int64  `json:"total"`
}

// SyncRequest represents a local cart upload
type SyncRequest struct {
	LocalCartItems []LocalItem `json:"localCartItems" binding:"required"`
}

// GetCart returns the user's cart, creating an empty one on first use
func (s *Service) GetCart(ctx context.Context, userID uint) (*Cart, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		cart = &Cart{UserID: userID, Items: []CartItem{}, LastUpdated: s.now()}
		if err := s.repo.Create(ctx, cart); err != nil {
			return nil, err
		}
		return cart, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// AddItem appends a new line to the cart
func (s *Service) AddItem(ctx context.Context, userID uint, req *AddItemRequest) (*Cart, error) {
	item, err := s.newItem(req.Code, req.Size, req.Quantity, req.Price, 0)
	if err != nil {
		return nil, err
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = append(cart.Items, *item)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"code":     item.Code,
		"size":     item.Size,
		"quantity": item.Quantity,
	}).Info("Cart item added")

	return cart, nil
}

// UpdateItem changes size, quantity and price of a line
func (s *Service) UpdateItem(ctx context.Context, userID uint, itemID string, req *UpdateItemRequest) (*Cart, error) {
	if !pricing.ValidSize(req.Size) {
		return nil, ErrInvalidSize
	}
	if req.Quantity < 1 {
		return nil, ErrInvalidItem
	}
	price, err := s.unitPrice(req.Size, req.Price)
	if err != nil {
		return nil, err
	}

	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := cart.FindItem(itemID)
	if idx < 0 {
		return nil, ErrItemNotFound
	}
	cart.Items[idx].Size = req.Size
	cart.Items[idx].Quantity = req.Quantity
	cart.Items[idx].Price = price
	cart.Items[idx].Total = price * int64(req.Quantity)

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem drops a line. Removing an unknown item leaves the cart as is.
func (s *Service) RemoveItem(ctx context.Context, userID uint, itemID string) (*Cart, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if idx := cart.FindItem(itemID); idx >= 0 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart removes every line
func (s *Service) ClearCart(ctx context.Context, userID uint) (*Cart, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Items = []CartItem{}
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// SyncLocal appends browser-side items to the cart. Incomplete items are
// skipped; the second result counts the items received.
func (s *Service) SyncLocal(ctx context.Context, userID uint, items []LocalItem) (*Cart, int, error) {
	cart, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, ErrCartNotFound) {
		cart = &Cart{UserID: userID, Items: []CartItem{}}
		err = nil
	}
	if err != nil {
		return nil, 0, err
	}

	// One sync shares a clock reading; a microsecond step per item keeps
	// the added_at order equal to the order received.
	stamp := s.now()
	skipped := 0
	for _, local := range items {
		item, err := s.newItem(local.Code, local.Size, local.Quantity, local.Price, local.Total)
		if err != nil {
			skipped++
			continue
		}
		item.AddedAt = stamp
		stamp = stamp.Add(time.Microsecond)
		cart.Items = append(cart.Items, *item)
	}

	if cart.ID == 0 {
		cart.Recalculate()
		cart.LastUpdated = s.now()
		err = s.repo.Create(ctx, cart)
	} else {
		err = s.save(ctx, cart)
	}
	if err != nil {
		return nil, 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"received": len(items),
		"skipped":  skipped,
	}).Info("Local cart synced")

	return cart, len(items), nil
}

func (s *Service) newItem(code, size string, quantity int, price, total int64) (*CartItem, error) {
	code = strings.TrimSpace(code)
	if code == "" || size == "" || quantity < 1 {
		return nil, ErrInvalidItem
	}
	if !pricing.ValidSize(size) {
		return nil, ErrInvalidSize
	}
	price, err := s.unitPrice(size, price)
	if err != nil {
		return nil, err
	}
	if total <= 0 {
		total = price * int64(quantity)
	}
	return &CartItem{
		Code:     code,
		Size:     size,
		Quantity: quantity,
		Price:    price,
		Total:    total,
		AddedAt:  s.now(),
	}, nil
}

func (s *Service) unitPrice(size string, given int64) (int64, error) {
	if given > 0 {
		return given, nil
	}
	price, err := s.prices.UnitPrice(size)
	if err != nil {
		return 0, fmt.Errorf("failed to price size %s: %w", size, err)
	}
	return price, nil
}

func (s *Service) save(ctx context.Context, cart *Cart) error {
	cart.Recalculate()
	cart.LastUpdated = s.now()
	return s.repo.Save(ctx, cart)
}
