package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

const (
	StatusPending        Status = "pending"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// DefaultCrewCapacity is the active delivery load at which a crew member
// may still receive work. A member carrying more than this is refused.
const DefaultCrewCapacity = 3

// transitions is the full set of legal status moves. Delivered and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:        {StatusOutForDelivery, StatusCancelled},
	StatusOutForDelivery: {StatusDelivered},
}

// CanTransition reports whether moving from s to next is legal.
func (s Status) CanTransition(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the status admits no further moves.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// OrderItem is one line of a placed order, priced at order time.
type OrderItem struct {
	ID           int             `json:"id"`
	MenuItemID   int             `json:"menu_item"`
	MenuItemName string          `json:"menu_item_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Order is a placed order as the backend reports it.
type Order struct {
	ID               int             `json:"id"`
	CustomerName     string          `json:"customer_name"`
	RestaurantName   string          `json:"restaurant_name"`
	DeliveryCrewName string          `json:"delivery_crew_name"`
	Status           Status          `json:"status"`
	Total            decimal.Decimal `json:"total"`
	DeliveryAddress  string          `json:"delivery_address"`
	Items            []OrderItem     `json:"items"`
	OrderDate        time.Time       `json:"order_date"`
}

// CrewMember is a delivery crew candidate with their current load.
type CrewMember struct {
	ID             int    `json:"id"`
	Username       string `json:"username"`
	AssignedOrders int    `json:"assigned_orders"`
}
