//go:generate mockgen -source=$GOFILE -destination=mock_$GOFILE -package=$GOPACKAGE
package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository persists carts
type Repository interface {
	FindByUserID(ctx context.Context, userID uint) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error
	Save(ctx context.Context, cart *Cart) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a gorm backed cart repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) FindByUserID(ctx context.Context, userID uint) (*Cart, error) {
	var cart Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("added_at ASC")
		}).
		Where("user_id = ?", userID).
		First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return &cart, nil
}

func (r *gormRepository) Create(ctx context.Context, cart *Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(cart).Error; err != nil {
			return fmt.Errorf("failed to create cart: %w", err)
		}
		return createItems(tx, cart)
	})
}

// Save writes the cart and replaces its items with cart.Items
func (r *gormRepository) Save(ctx context.Context, cart *Cart) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to replace cart items: %w", err)
		}
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			return fmt.Errorf("failed to save cart: %w", err)
		}
		return createItems(tx, cart)
	})
}

func createItems(tx *gorm.DB, cart *Cart) error {
	if len(cart.Items) == 0 {
		return nil
	}
	for i := range cart.Items {
		cart.Items[i].CartID = cart.ID
	}
	if err := tx.Create(&cart.Items).Error; err != nil {
		return fmt.Errorf("failed to save cart items: %w", err)
	}
	return nil
}
