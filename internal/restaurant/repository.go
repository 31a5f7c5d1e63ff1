package restaurant

import (
	"context"
	"fmt"

	"cravings-client/internal/api"
	"cravings-client/internal/catalog"
)

// Repository talks to the restaurant and menu item admin endpoints.
type Repository interface {
	ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int, params RestaurantParams) (*catalog.Restaurant, error)
	CreateMenuItem(ctx context.Context, restaurantID int, params MenuItemParams) (*catalog.MenuItem, error)
	UpdateMenuItem(ctx context.Context, restaurantID, itemID int, params MenuItemParams) (*catalog.MenuItem, error)
	DeleteMenuItem(ctx context.Context, restaurantID, itemID int) error
}

type repository struct {
	client *api.Client
}

// NewRepository creates a restaurant admin repository over the API client.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) ListRestaurants(ctx context.Context) ([]catalog.Restaurant, error) {
	resp, err := r.client.Get(ctx, "/api/restaurants/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}

	var restaurants []catalog.Restaurant
	if err := api.DecodeJSON(resp, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *repository) UpdateRestaurant(ctx context.Context, id int, params RestaurantParams) (*catalog.Restaurant, error) {
	path := fmt.Sprintf("/api/restaurants/%d/", id)
	resp, err := r.client.Patch(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("updating restaurant: %w", err)
	}

	var updated catalog.Restaurant
	if err := api.DecodeJSON(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) CreateMenuItem(ctx context.Context, restaurantID int, params MenuItemParams) (*catalog.MenuItem, error) {
	path := fmt.Sprintf("/api/restaurants/%d/menu-items/", restaurantID)
	resp, err := r.client.Post(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("creating menu item: %w", err)
	}

	var created catalog.MenuItem
	if err := api.DecodeJSON(resp, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) UpdateMenuItem(ctx context.Context, restaurantID, itemID int, params MenuItemParams) (*catalog.MenuItem, error) {
	path := fmt.Sprintf("/api/restaurants/%d/menu-items/%d/", restaurantID, itemID)
	resp, err := r.client.Patch(ctx, path, params)
	if err != nil {
		return nil, fmt.Errorf("updating menu item: %w", err)
	}

	var updated catalog.MenuItem
	if err := api.DecodeJSON(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) DeleteMenuItem(ctx context.Context, restaurantID, itemID int) error {
	path := fmt.Sprintf("/api/restaurants/%d/menu-items/%d/", restaurantID, itemID)
	if _, err := r.client.Delete(ctx, path); err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}
	return nil
}
