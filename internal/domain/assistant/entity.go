// internal/domain/assistant/entity.go
package assistant

import "time"

// Line is one pending item in the assistant's local cart
type Line struct {
	ID       string    `json:"id"`
	Code     string    `json:"code"`
	Size     string    `json:"size"` // display label, e.g. "Extra Large"
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// Session is the checkout assistant state of one browser session (stored in Redis)
type Session struct {
	ID               string    `json:"session_id"`
	PastedCode       string    `json:"pasted_code"`
	ShowOptions      bool      `json:"show_options"`
	SelectedSize     string    `json:"selected_size"`
	SelectedQuantity int       `json:"selected_quantity"`
	EditingLineID    string    `json:"editing_line_id,omitempty"`
	Lines            []Line    `json:"lines"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	ExpiresAt        time.Time `json:"expires_at"`
}

// SizeOptions are the sizes offered by the assistant in display order
var SizeOptions = []string{"Small", "Medium", "Large", "Extra Large"}

// Notice is a user-facing precondition failure. It never changes state.
type Notice struct {
	Message string
}

func (n *Notice) Error() string { return n.Message }

var (
	ErrNoCode          = &Notice{Message: "Please paste an item code first"}
	ErrNoSize          = &Notice{Message: "Please select a size"}
	ErrUnknownSize     = &Notice{Message: "Please choose one of the available sizes"}
	ErrInvalidQuantity = &Notice{Message: "Please choose a quantity from the list"}
	ErrCartEmpty       = &Notice{Message: "Your cart is empty"}
	ErrLineNotFound    = &Notice{Message: "Item not found in cart"}
	ErrNotEditing      = &Notice{Message: "No item is being edited"}
	ErrImageNotFound   = &Notice{Message: "Image not found for this item code"}
)

// Success messages shown after an operation
const (
	MsgAdded      = "Item added to cart!"
	MsgRemoved    = "Item removed from cart"
	MsgUpdated    = "Item updated successfully!"
	MsgCheckedOut = "Proceeding to checkout..."
)
