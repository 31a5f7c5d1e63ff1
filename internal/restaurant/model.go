package restaurant

import (
	"github.com/shopspring/decimal"

	"cravings-client/internal/catalog"
)

// RestaurantParams carries the editable restaurant fields. Times use the
// backend's HH:MM:SS form.
type RestaurantParams struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

// MenuItemParams carries the editable menu item fields.
type MenuItemParams struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	Category    catalog.Category `json:"category"`
	IsAvailable bool             `json:"is_available"`
}
