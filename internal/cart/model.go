package cart

import "github.com/shopspring/decimal"

// CartItem is one line in the shopping cart. Price and MenuItemName are
// denormalized from the menu item by the backend.
type CartItem struct {
	ID           int             `json:"id"`
	MenuItemID   int             `json:"menu_item"`
	MenuItemName string          `json:"menu_item_name"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Cart is the customer's single server-side cart.
type Cart struct {
	ID    int             `json:"id"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Recompute rederives every subtotal and the total from price and quantity.
// Stored figures from the wire are never trusted after a local mutation.
func (c *Cart) Recompute() {
	total := decimal.Zero
	for i := range c.Items {
		c.Items[i].Subtotal = c.Items[i].Price.Mul(decimal.NewFromInt(int64(c.Items[i].Quantity)))
		total = total.Add(c.Items[i].Subtotal)
	}
	c.Total = total
}

// Find returns the line with the given cart item id, or nil.
func (c *Cart) Find(cartItemID int) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == cartItemID {
			return &c.Items[i]
		}
	}
	return nil
}

// FindByMenuItem returns the line holding the given menu item, or nil.
func (c *Cart) FindByMenuItem(menuItemID int) *CartItem {
	for i := range c.Items {
		if c.Items[i].MenuItemID == menuItemID {
			return &c.Items[i]
		}
	}
	return nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Items) == 0
}
