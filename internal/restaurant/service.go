package restaurant

import (
	"context"
	"strings"

	"cravings-client/internal/catalog"
	"cravings-client/internal/logger"

	"go.uber.org/zap"
)

// Service defines the restaurant owner's administration operations.
type Service interface {
	OwnRestaurant(ctx context.Context, ownerID int) (*catalog.Restaurant, error)
	UpdateRestaurant(ctx context.Context, id int, params RestaurantParams) (*catalog.Restaurant, error)
	CreateMenuItem(ctx context.Context, restaurantID int, params MenuItemParams) (*catalog.MenuItem, error)
	UpdateMenuItem(ctx context.Context, restaurantID, itemID int, params MenuItemParams) (*catalog.MenuItem, error)
	DeleteMenuItem(ctx context.Context, restaurantID, itemID int) error
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new restaurant admin service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// OwnRestaurant finds the restaurant owned by the given user. The backend
// scopes the listing for owners; matching on owner id keeps staff
// accounts, which see every restaurant, from picking the wrong one.
func (s *service) OwnRestaurant(ctx context.Context, ownerID int) (*catalog.Restaurant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "OwnRestaurant"),
		zap.Int("owner_id", ownerID),
	)

	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		log.Error("failed to list restaurants", zap.Error(err))
		return nil, err
	}

	for i := range restaurants {
		if restaurants[i].Owner == ownerID {
			return &restaurants[i], nil
		}
	}

	log.Warn("no owned restaurant")
	return nil, ErrNoRestaurant
}

// UpdateRestaurant edits the restaurant's profile fields.
func (s *service) UpdateRestaurant(ctx context.Context, id int, params RestaurantParams) (*catalog.Restaurant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateRestaurant"),
		zap.Int("restaurant_id", id),
	)

	if strings.TrimSpace(params.Name) == "" {
		log.Warn("rejected update with blank name")
		return nil, ErrBlankName
	}

	updated, err := s.repo.UpdateRestaurant(ctx, id, params)
	if err != nil {
		log.Error("failed to update restaurant", zap.Error(err))
		return nil, err
	}

	log.Info("restaurant updated")
	return updated, nil
}

// CreateMenuItem adds a dish to the menu.
func (s *service) CreateMenuItem(ctx context.Context, restaurantID int, params MenuItemParams) (*catalog.MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateMenuItem"),
		zap.Int("restaurant_id", restaurantID),
	)

	if err := validateMenuItem(params); err != nil {
		log.Warn("rejected menu item", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.CreateMenuItem(ctx, restaurantID, params)
	if err != nil {
		log.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item created", zap.Int("menu_item_id", created.ID))
	return created, nil
}

// UpdateMenuItem edits an existing dish.
func (s *service) UpdateMenuItem(ctx context.Context, restaurantID, itemID int, params MenuItemParams) (*catalog.MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpdateMenuItem"),
		zap.Int("restaurant_id", restaurantID),
		zap.Int("menu_item_id", itemID),
	)

	if err := validateMenuItem(params); err != nil {
		log.Warn("rejected menu item", zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.UpdateMenuItem(ctx, restaurantID, itemID, params)
	if err != nil {
		log.Error("failed to update menu item", zap.Error(err))
		return nil, err
	}

	log.Info("menu item updated")
	return updated, nil
}

// DeleteMenuItem removes a dish. Deleting an absent item is an error,
// the backend's not-found passes through.
func (s *service) DeleteMenuItem(ctx context.Context, restaurantID, itemID int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteMenuItem"),
		zap.Int("restaurant_id", restaurantID),
		zap.Int("menu_item_id", itemID),
	)

	if err := s.repo.DeleteMenuItem(ctx, restaurantID, itemID); err != nil {
		log.Error("failed to delete menu item", zap.Error(err))
		return err
	}

	log.Info("menu item deleted")
	return nil
}

func validateMenuItem(params MenuItemParams) error {
	if strings.TrimSpace(params.Name) == "" {
		return ErrBlankName
	}
	if !params.Category.Valid() {
		return ErrInvalidCategory
	}
	if params.Price.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}
