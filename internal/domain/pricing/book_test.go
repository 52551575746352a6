package pricing

import (
	"testing"

	"github.com/pressart/storefront-api/internal/config"
)

func testBook() *Book {
	return NewBook(config.PricingConfig{Currency: "PHP", Small: 29900, Medium: 44900, Large: 59900, XLarge: 79900})
}

func TestLineTotal(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		size     string
		quantity int
		want     int64
		wantErr  bool
	}{
		"small single":   {size: "S", quantity: 1, want: 29900},
		"extra large x3": {size: "XL", quantity: 3, want: 239700},
		"unknown size":   {size: "XXL", quantity: 1, wantErr: true},
		"zero quantity":  {size: "M", quantity: 0, wantErr: true},
	}

	b := testBook()
	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := b.LineTotal(tt.size, tt.quantity)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("want %d, got %d", tt.want, got)
			}
		})
	}
}

func TestSizeCode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Small":       "S",
		"medium":      "M",
		" Large ":     "L",
		"Extra Large": "XL",
		"xl":          "XL",
	}
	for label, want := range cases {
		if got, ok := SizeCode(label); !ok || got != want {
			t.Fatalf("SizeCode(%q) = %q, %v; want %q", label, got, ok, want)
		}
	}
	if _, ok := SizeCode("Huge"); ok {
		t.Fatal("unknown label should not map")
	}
	if SizeLabel("XL") != "Extra Large" || SizeLabel("Q") != "Q" {
		t.Fatal("unexpected size label")
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	b := testBook()
	if got := b.Format(44900); got != "PHP 449.00" {
		t.Fatalf("unexpected format: %q", got)
	}
	if got := b.Format(-5); got != "PHP -0.05" {
		t.Fatalf("unexpected negative format: %q", got)
	}
}
