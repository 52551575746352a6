// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("item not found in cart")
	ErrInvalidSize  = errors.New("invalid size. Must be S, M, L, or XL")
	ErrInvalidItem  = errors.New("code, size and quantity are required")
)

// Cart is the persisted cart of a signed-in user
type Cart struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	UserID      uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalItems  int        `gorm:"not null;default:0" json:"total_items"`
	TotalAmount int64      `gorm:"not null;default:0" json:"total_amount"` // minor units
	LastUpdated time.Time  `json:"last_updated"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName overrides the table name
func (Cart) TableName() string {
	return "carts"
}

// BeforeSave keeps the summary columns in step with the items
func (c *Cart) BeforeSave(tx *gorm.DB) error {
	c.Recalculate()
	c.LastUpdated = time.Now().UTC()
	return nil
}

// Recalculate refreshes TotalItems and TotalAmount. TotalItems counts
// lines, not pieces.
func (c *Cart) Recalculate() {
	c.TotalItems = len(c.Items)
	c.TotalAmount = 0
	for _, item := range c.Items {
		c.TotalAmount += item.Total
	}
}

// FindItem returns the index of the item with the given id, or -1
func (c *Cart) FindItem(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// CartItem is one line of a cart
type CartItem struct {
	ID       string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	CartID   uint      `gorm:"not null;index" json:"-"`
	Code     string    `gorm:"not null" json:"code"`
	Size     string    `gorm:"type:varchar(2);not null" json:"size"`
	Quantity int       `gorm:"not null;default:1" json:"quantity"`
	Price    int64     `gorm:"not null" json:"price"` // unit price at time of adding
	Total    int64     `gorm:"not null" json:"total"`
	AddedAt  time.Time `json:"added_at"`
}

// TableName overrides the table name
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate assigns an id to new items
func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}

// Summary is the cart as returned by the API
type Summary struct {
	Items       []CartItem `json:"items"`
	TotalItems  int        `json:"totalItems"`
	TotalAmount int64      `json:"totalAmount"`
	LastUpdated time.Time  `json:"lastUpdated"`
}

// ToSummary converts a cart into its API shape
func (c *Cart) ToSummary() Summary {
	items := c.Items
	if items == nil {
		items = []CartItem{}
	}
	return Summary{
		Items:       items,
		TotalItems:  c.TotalItems,
		TotalAmount: c.TotalAmount,
		LastUpdated: c.LastUpdated,
	}
}
