package order

import (
	"context"
	"fmt"

	"cravings-client/internal/api"
)

// Repository talks to the order and delivery crew endpoints. The backend
// scopes /api/orders/ to the caller's role, so customers see their own
// orders, owners their restaurant's, and crew their assignments.
type Repository interface {
	ListOrders(ctx context.Context) ([]Order, error)
	ListCrew(ctx context.Context) ([]CrewMember, error)
	AssignDelivery(ctx context.Context, orderID, crewID int) (*Order, error)
	MarkDelivered(ctx context.Context, orderID int) (*Order, error)
	UpdateStatus(ctx context.Context, orderID int, status Status) (*Order, error)
}

type repository struct {
	client *api.Client
}

// NewRepository creates an order repository over the API client.
func NewRepository(client *api.Client) Repository {
	return &repository{client: client}
}

func (r *repository) ListOrders(ctx context.Context) ([]Order, error) {
	resp, err := r.client.Get(ctx, "/api/orders/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	var orders []Order
	if err := api.DecodeJSON(resp, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListCrew(ctx context.Context) ([]CrewMember, error) {
	resp, err := r.client.Get(ctx, "/api/users/delivery-crew/", nil)
	if err != nil {
		return nil, fmt.Errorf("listing delivery crew: %w", err)
	}

	var crew []CrewMember
	if err := api.DecodeJSON(resp, &crew); err != nil {
		return nil, err
	}
	return crew, nil
}

func (r *repository) AssignDelivery(ctx context.Context, orderID, crewID int) (*Order, error) {
	path := fmt.Sprintf("/api/orders/%d/assign-delivery/", orderID)
	resp, err := r.client.Patch(ctx, path, map[string]int{"delivery_crew": crewID})
	if err != nil {
		return nil, fmt.Errorf("assigning delivery crew: %w", err)
	}

	var updated Order
	if err := api.DecodeJSON(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) MarkDelivered(ctx context.Context, orderID int) (*Order, error) {
	path := fmt.Sprintf("/api/orders/%d/mark-delivered/", orderID)
	resp, err := r.client.Patch(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("marking delivered: %w", err)
	}

	var updated Order
	if err := api.DecodeJSON(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *repository) UpdateStatus(ctx context.Context, orderID int, status Status) (*Order, error) {
	path := fmt.Sprintf("/api/orders/%d/", orderID)
	resp, err := r.client.Patch(ctx, path, map[string]Status{"status": status})
	if err != nil {
		return nil, fmt.Errorf("updating order status: %w", err)
	}

	var updated Order
	if err := api.DecodeJSON(resp, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
