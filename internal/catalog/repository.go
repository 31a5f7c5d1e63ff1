package catalog

import (
	"context"
	"fmt"
	"net/http"

	"cravings-client/internal/api"
)

// Repository fetches catalog data from the backend.
type Repository interface {
	ListRestaurants(ctx context.Context) ([]Restaurant, error)
	ListMenuItems(ctx context.Context, restaurantID int) ([]MenuItem, error)
}

type repository struct {
	client *api.Client
}

// NewRepository creates a catalog repository over the API client.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	resp, err := r.client.Get(ctx, "/api/restaurants/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}

	var restaurants []Restaurant
	if err := api.DecodeJSON(resp, &restaurants); err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *repository) ListMenuItems(ctx context.Context, restaurantID int) ([]MenuItem, error) {
	resp, err := r.client.Do(ctx, api.Request{
		Method: http.MethodGet,
		Path:   fmt.Sprintf("/api/restaurants/%d/menu-items/", restaurantID),
	})
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}

	var items []MenuItem
	if err := api.DecodeJSON(resp, &items); err != nil {
		return nil, err
	}
	return items, nil
}
