package restaurant

import "errors"

var (
	// -- Validation & Input --
	ErrBlankName       = errors.New("name must not be blank")
	ErrInvalidCategory = errors.New("invalid menu item category")
	ErrNegativePrice   = errors.New("price must not be negative")

	// -- Lookup --
	ErrNoRestaurant = errors.New("no restaurant owned by this user")
)
