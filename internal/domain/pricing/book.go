// internal/domain/pricing/book.go
package pricing

import (
	"fmt"
	"strings"

	"github.com/pressart/storefront-api/internal/config"
)

// Size codes as stored in the cart
const (
	SizeSmall  = "S"
	SizeMedium = "M"
	SizeLarge  = "L"
	SizeXLarge = "XL"
)

// Sizes lists the size codes in display order
var Sizes = []string{SizeSmall, SizeMedium, SizeLarge, SizeXLarge}

var sizeLabels = map[string]string{
	SizeSmall:  "Small",
	SizeMedium: "Medium",
	SizeLarge:  "Large",
	SizeXLarge: "Extra Large",
}

// Book holds unit prices per size in minor currency units
type Book struct {
	Currency string
	prices   map[string]int64
}

// NewBook creates a price book from configuration
func NewBook(cfg config.PricingConfig) *Book {
	return &Book{
		Currency: cfg.Currency,
		prices: map[string]int64{
			SizeSmall:  cfg.Small,
			SizeMedium: cfg.Medium,
			SizeLarge:  cfg.Large,
			SizeXLarge: cfg.XLarge,
		},
	}
}

// UnitPrice returns the price of one print in the given size
func (b *Book) UnitPrice(size string) (int64, error) {
	price, ok := b.prices[size]
	if !ok {
		return 0, fmt.Errorf("no price for size %q", size)
	}
	return price, nil
}

// LineTotal returns unit price times quantity
func (b *Book) LineTotal(size string, quantity int) (int64, error) {
	if quantity < 1 {
		return 0, fmt.Errorf("quantity must be at least 1")
	}
	price, err := b.UnitPrice(size)
	if err != nil {
		return 0, err
	}
	return price * int64(quantity), nil
}

// Format renders an amount in minor units, e.g. "PHP 449.00"
func (b *Book) Format(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s %s%d.%02d", b.Currency, sign, amount/100, amount%100)
}

// SizeCode maps a display label such as "Extra Large" to its code.
// Codes are accepted as-is.
func SizeCode(label string) (string, bool) {
	label = strings.TrimSpace(label)
	for code, l := range sizeLabels {
		if strings.EqualFold(l, label) || strings.EqualFold(code, label) {
			return code, true
		}
	}
	return "", false
}

// SizeLabel maps a size code to its display label
func SizeLabel(code string) string {
	if label, ok := sizeLabels[code]; ok {
		return label
	}
	return code
}

// ValidSize reports whether code is a known size code
func ValidSize(code string) bool {
	_, ok := sizeLabels[code]
	return ok
}
