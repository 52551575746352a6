// internal/domain/assistant/session.go
package assistant

import (
	"strings"
	"time"
)

// NewSession creates an empty session
func NewSession(id string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:               id,
		SelectedQuantity: 1,
		Lines:            []Line{},
		CreatedAt:        now,
		UpdatedAt:        now,
		ExpiresAt:        now.Add(ttl),
	}
}

// PasteCode stores the pasted text as typed. Options are shown once the
// text has non-blank content.
func (s *Session) PasteCode(text string) {
	s.PastedCode = text
	s.ShowOptions = strings.TrimSpace(text) != ""
}

// SelectSize chooses one of SizeOptions
func (s *Session) SelectSize(size string) error {
	for _, option := range SizeOptions {
		if option == size {
			s.SelectedSize = size
			return nil
		}
	}
	return ErrUnknownSize
}

// SelectQuantity chooses a quantity in [1, limit]
func (s *Session) SelectQuantity(quantity, limit int) error {
	if quantity < 1 || quantity > limit {
		return ErrInvalidQuantity
	}
	s.SelectedQuantity = quantity
	return nil
}

// AddToCart turns the current selection into a new line at the top of the
// cart and resets the form
func (s *Session) AddToCart(lineID string, now time.Time) (*Line, error) {
	code := strings.TrimSpace(s.PastedCode)
	if code == "" {
		return nil, ErrNoCode
	}
	if s.SelectedSize == "" {
		return nil, ErrNoSize
	}

	line := Line{
		ID:       lineID,
		Code:     code,
		Size:     s.SelectedSize,
		Quantity: s.SelectedQuantity,
		AddedAt:  now,
	}
	s.Lines = append([]Line{line}, s.Lines...)
	s.resetForm()
	s.PastedCode = ""
	s.ShowOptions = false
	return &line, nil
}

// StartEdit loads a line's size and quantity into the form
func (s *Session) StartEdit(lineID string) error {
	line := s.find(lineID)
	if line == nil {
		return ErrLineNotFound
	}
	s.EditingLineID = line.ID
	s.SelectedSize = line.Size
	s.SelectedQuantity = line.Quantity
	return nil
}

// SaveEdit writes the form back to the line being edited
func (s *Session) SaveEdit() (*Line, error) {
	if s.EditingLineID == "" {
		return nil, ErrNotEditing
	}
	if s.SelectedSize == "" {
		return nil, ErrNoSize
	}
	line := s.find(s.EditingLineID)
	if line == nil {
		return nil, ErrLineNotFound
	}

	line.Size = s.SelectedSize
	line.Quantity = s.SelectedQuantity
	saved := *line
	s.EditingLineID = ""
	s.resetForm()
	return &saved, nil
}

// CancelEdit leaves the line unchanged and resets the form
func (s *Session) CancelEdit() {
	s.EditingLineID = ""
	s.resetForm()
}

// RemoveLine drops a line from the cart
func (s *Session) RemoveLine(lineID string) error {
	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			if s.EditingLineID == lineID {
				s.CancelEdit()
			}
			return nil
		}
	}
	return ErrLineNotFound
}

// Checkout returns a snapshot of the lines. The cart must not be empty.
func (s *Session) Checkout() ([]Line, error) {
	if len(s.Lines) == 0 {
		return nil, ErrCartEmpty
	}
	lines := make([]Line, len(s.Lines))
	copy(lines, s.Lines)
	return lines, nil
}

// Line returns the line with the given id
func (s *Session) Line(lineID string) (*Line, error) {
	line := s.find(lineID)
	if line == nil {
		return nil, ErrLineNotFound
	}
	return line, nil
}

// Clear empties the cart and the form
func (s *Session) Clear() {
	s.Lines = []Line{}
	s.PastedCode = ""
	s.ShowOptions = false
	s.EditingLineID = ""
	s.resetForm()
}

func (s *Session) resetForm() {
	s.SelectedSize = ""
	s.SelectedQuantity = 1
}

func (s *Session) find(lineID string) *Line {
	for i := range s.Lines {
		if s.Lines[i].ID == lineID {
			return &s.Lines[i]
		}
	}
	return nil
}
