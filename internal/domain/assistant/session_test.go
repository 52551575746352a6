package assistant

import (
	"errors"
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func sessionWithLines(codes ...string) *Session {
	s := NewSession("sess", testNow, time.Hour)
	for i := len(codes) - 1; i >= 0; i-- {
		s.PasteCode(codes[i])
		_ = s.SelectSize("Medium")
		if _, err := s.AddToCart("line-"+codes[i], testNow); err != nil {
			panic(err)
		}
	}
	return s
}

func TestPasteCode(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		text        string
		showOptions bool
	}{
		"code":       {text: "COLLAGE-004", showOptions: true},
		"padded":     {text: "  SPACE-1 ", showOptions: true},
		"blank":      {text: "   ", showOptions: false},
		"empty":      {text: "", showOptions: false},
		"free text":  {text: "hello", showOptions: true},
		"just digit": {text: "7", showOptions: true},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := NewSession("sess", testNow, time.Hour)
			s.PasteCode(tt.text)
			if s.ShowOptions != tt.showOptions {
				t.Fatalf("show options: want %v, got %v", tt.showOptions, s.ShowOptions)
			}
			if s.PastedCode != tt.text {
				t.Fatalf("pasted code should be kept as typed, got %q", s.PastedCode)
			}
		})
	}
}

func TestAddToCart(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		code    string
		size    string
		wantErr error
	}{
		"missing code": {code: "  ", size: "Small", wantErr: ErrNoCode},
		"missing size": {code: "COLLAGE-004", wantErr: ErrNoSize},
		"trims code":   {code: "  COLLAGE-004 ", size: "Large"},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := NewSession("sess", testNow, time.Hour)
			s.PasteCode(tt.code)
			if tt.size != "" {
				if err := s.SelectSize(tt.size); err != nil {
					t.Fatalf("select size: %v", err)
				}
			}
			_ = s.SelectQuantity(3, 10)

			line, err := s.AddToCart("line-1", testNow)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				if len(s.Lines) != 0 || s.PastedCode != tt.code || s.SelectedQuantity != 3 {
					t.Fatal("failed add must not change state")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if line.Code != "COLLAGE-004" || line.Size != "Large" || line.Quantity != 3 {
				t.Fatalf("unexpected line: %+v", line)
			}
			if s.PastedCode != "" || s.SelectedSize != "" || s.SelectedQuantity != 1 || s.ShowOptions {
				t.Fatalf("form not reset: %+v", s)
			}
		})
	}
}

func TestAddToCartPrepends(t *testing.T) {
	t.Parallel()

	s := sessionWithLines("A-1", "B-2")
	s.PasteCode("C-3")
	_ = s.SelectSize("Small")
	if _, err := s.AddToCart("line-C-3", testNow); err != nil {
		t.Fatalf("add: %v", err)
	}

	want := []string{"C-3", "A-1", "B-2"}
	for i, code := range want {
		if s.Lines[i].Code != code {
			t.Fatalf("line %d: want %s, got %s", i, code, s.Lines[i].Code)
		}
	}
}

func TestSelectQuantity(t *testing.T) {
	t.Parallel()

	s := NewSession("sess", testNow, time.Hour)
	for _, q := range []int{0, -1, 11} {
		if err := s.SelectQuantity(q, 10); !errors.Is(err, ErrInvalidQuantity) {
			t.Fatalf("quantity %d: expected ErrInvalidQuantity, got %v", q, err)
		}
	}
	if err := s.SelectQuantity(10, 10); err != nil || s.SelectedQuantity != 10 {
		t.Fatalf("quantity 10 should be accepted: %v", err)
	}
	if err := s.SelectSize("Huge"); !errors.Is(err, ErrUnknownSize) {
		t.Fatalf("expected ErrUnknownSize, got %v", err)
	}
}

func TestEditFlow(t *testing.T) {
	t.Parallel()

	s := sessionWithLines("A-1", "B-2")

	if err := s.StartEdit("missing"); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}
	if err := s.StartEdit("line-B-2"); err != nil {
		t.Fatalf("start edit: %v", err)
	}
	if s.SelectedSize != "Medium" || s.SelectedQuantity != 1 {
		t.Fatalf("form should hold the line values: %+v", s)
	}

	s.SelectedSize = ""
	if _, err := s.SaveEdit(); !errors.Is(err, ErrNoSize) {
		t.Fatalf("expected ErrNoSize, got %v", err)
	}

	_ = s.SelectSize("Extra Large")
	_ = s.SelectQuantity(4, 10)
	saved, err := s.SaveEdit()
	if err != nil {
		t.Fatalf("save edit: %v", err)
	}
	if saved.Size != "Extra Large" || saved.Quantity != 4 {
		t.Fatalf("unexpected saved line: %+v", saved)
	}
	if s.Lines[1].Size != "Extra Large" || s.Lines[0].Size != "Medium" {
		t.Fatal("only the edited line should change")
	}
	if s.EditingLineID != "" || s.SelectedSize != "" || s.SelectedQuantity != 1 {
		t.Fatal("form should reset after save")
	}
	if _, err := s.SaveEdit(); !errors.Is(err, ErrNotEditing) {
		t.Fatalf("expected ErrNotEditing, got %v", err)
	}
}

func TestCancelEdit(t *testing.T) {
	t.Parallel()

	s := sessionWithLines("A-1")
	_ = s.StartEdit("line-A-1")
	_ = s.SelectSize("Small")
	s.CancelEdit()

	if s.Lines[0].Size != "Medium" {
		t.Fatal("cancel must not change the line")
	}
	if s.EditingLineID != "" || s.SelectedSize != "" {
		t.Fatal("cancel should reset the form")
	}
}

func TestRemoveLineAndCheckout(t *testing.T) {
	t.Parallel()

	s := sessionWithLines("A-1", "B-2")
	_ = s.StartEdit("line-A-1")

	if err := s.RemoveLine("line-A-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(s.Lines) != 1 || s.EditingLineID != "" {
		t.Fatalf("unexpected state after remove: %+v", s)
	}
	if err := s.RemoveLine("line-A-1"); !errors.Is(err, ErrLineNotFound) {
		t.Fatalf("expected ErrLineNotFound, got %v", err)
	}

	lines, err := s.Checkout()
	if err != nil || len(lines) != 1 {
		t.Fatalf("checkout: %v %v", lines, err)
	}
	lines[0].Code = "changed"
	if s.Lines[0].Code != "B-2" {
		t.Fatal("checkout must return a copy")
	}

	s.Clear()
	if _, err := s.Checkout(); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}
