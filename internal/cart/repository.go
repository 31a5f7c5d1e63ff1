package cart

import (
	"context"
	"fmt"

	"cravings-client/internal/api"
	"cravings-client/internal/order"
)

// Repository talks to the cart and order creation endpoints.
type Repository interface {
	Fetch(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, menuItemID, quantity int) error
	UpdateItem(ctx context.Context, cartItemID, quantity int) error
	DeleteItem(ctx context.Context, cartItemID int) error
	CreateOrder(ctx context.Context, deliveryAddress string) (*order.Order, error)
}

type repository struct {
	client *api.Client
}

// NewRepository creates a cart repository over the API client.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) Fetch(ctx context.Context) (*Cart, error) {
	resp, err := r.client.Get(ctx, "/api/cart/", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching cart: %w", err)
	}

	var cart Cart
	if err := api.DecodeJSON(resp, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *repository) AddItem(ctx context.Context, menuItemID, quantity int) error {
	body := map[string]int{"menu_item": menuItemID, "quantity": quantity}
	if _, err := r.client.Post(ctx, "/api/cart/items/", body); err != nil {
		return fmt.Errorf("adding cart item: %w", err)
	}
	return nil
}

func (r *repository) UpdateItem(ctx context.Context, cartItemID, quantity int) error {
	path := fmt.Sprintf("/api/cart/items/%d/", cartItemID)
	if _, err := r.client.Patch(ctx, path, map[string]int{"quantity": quantity}); err != nil {
		return fmt.Errorf("updating cart item: %w", err)
	}
	return nil
}

func (r *repository) DeleteItem(ctx context.Context, cartItemID int) error {
	path := fmt.Sprintf("/api/cart/items/%d/", cartItemID)
	if _, err := r.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}
	return nil
}

func (r *repository) CreateOrder(ctx context.Context, deliveryAddress string) (*order.Order, error) {
	body := map[string]string{"delivery_address": deliveryAddress}
	resp, err := r.client.Post(ctx, "/api/orders/", body)
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	var placed order.Order
	if err := api.DecodeJSON(resp, &placed); err != nil {
		return nil, err
	}
	return &placed, nil
}
