package catalog

import (
	"github.com/shopspring/decimal"
)

// Category is the single closed enumeration shared by the browsing filter and
// the manager's create/edit path.
type Category string

const (
	CategoryAppetizer Category = "appetizer"
	CategoryMain      Category = "main"
	CategoryDessert   Category = "dessert"
	CategoryBeverage  Category = "beverage"
	CategoryOther     Category = "other"

	// CategoryAll is a filter wildcard, never stored on an item.
	CategoryAll Category = "all"
)

// Categories lists the storable categories in display order.
func Categories() []Category {
	return []Category{
		CategoryAppetizer,
		CategoryMain,
		CategoryDessert,
		CategoryBeverage,
		CategoryOther,
	}
}

// Normalize buckets unknown or empty categories under Other.
func (c Category) Normalize() Category {
	switch c {
	case CategoryAppetizer, CategoryMain, CategoryDessert, CategoryBeverage, CategoryOther:
		return c
	}
	return CategoryOther
}

// Valid reports whether c may be stored on a menu item.
func (c Category) Valid() bool {
	return c != CategoryAll && c.Normalize() == c
}

type Restaurant struct {
	ID          int    `json:"id"`
	Owner       int    `json:"owner"`
	OwnerName   string `json:"owner_name"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OpeningTime string `json:"opening_time"`
	ClosingTime string `json:"closing_time"`
}

type MenuItem struct {
	ID             int             `json:"id"`
	RestaurantID   int             `json:"restaurant"`
	RestaurantName string          `json:"restaurant_name"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Price          decimal.Decimal `json:"price"`
	Category       Category        `json:"category"`
	IsAvailable    bool            `json:"is_available"`
}

// CategoryGroup is one presentation bucket of a grouped menu.
type CategoryGroup struct {
	Category Category
	Items    []MenuItem
}
