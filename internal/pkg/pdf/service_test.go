package pdf

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pressart/storefront-api/internal/config"
	"github.com/pressart/storefront-api/internal/domain/cart"
	"github.com/pressart/storefront-api/internal/domain/pricing"
)

func newTestService() *Service {
	cfg := &config.Config{
		App:     config.AppConfig{CompanyName: "PressArt", FrontendURL: "https://pressart.test"},
		Pricing: config.PricingConfig{Currency: "PHP", Small: 29900, Medium: 44900, Large: 59900, XLarge: 79900},
	}
	s := NewService(cfg, pricing.NewBook(cfg.Pricing))
	s.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 0, 0, time.UTC) }
	return s
}

func TestBuildQuoteData(t *testing.T) {
	t.Parallel()

	s := newTestService()
	c := &cart.Cart{
		UserID: 7,
		Items: []cart.CartItem{
			{Code: "BTS-001", Size: "M", Quantity: 2, Price: 44900, Total: 89800},
			{Code: "PAINTINGS-3", Size: "XL", Quantity: 1, Price: 79900, Total: 79900},
		},
	}
	c.Recalculate()

	data := s.BuildQuoteData(c, Customer{Name: "Ana", Email: "ana@example.com"})
	if data.Number != "Q-7-20261017093000" {
		t.Errorf("unexpected number %q", data.Number)
	}
	if data.ValidUntil != "October 31, 2026" {
		t.Errorf("unexpected validity %q", data.ValidUntil)
	}
	if data.TotalAmount != "PHP 1697.00" || data.TotalItems != 2 {
		t.Errorf("unexpected totals %q / %d", data.TotalAmount, data.TotalItems)
	}
	if data.Lines[1].Size != "Extra Large" || data.Lines[0].UnitPrice != "PHP 449.00" {
		t.Errorf("unexpected lines %+v", data.Lines)
	}

	html, err := s.RenderHTML(data)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"PressArt Print Quote", "Q-7-20261017093000", "BTS-001", "Extra Large", "PHP 1697.00", "Ana (ana@example.com)"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}
}

func TestGenerateQuoteEmptyCart(t *testing.T) {
	t.Parallel()

	if _, err := newTestService().GenerateQuote(&cart.Cart{}, Customer{}); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}
