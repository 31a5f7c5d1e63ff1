package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrEmptyCart       = errors.New("cart is empty, add items before placing an order")
	ErrBlankAddress    = errors.New("delivery address must not be blank")
)
