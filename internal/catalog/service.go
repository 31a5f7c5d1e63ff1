package catalog

import (
	"context"

	"cravings-client/internal/logger"

	"go.uber.org/zap"
)

// Service defines the browsing logic for the menu catalog.
type Service interface {
	Restaurants(ctx context.Context) ([]Restaurant, error)
	Menu(ctx context.Context, restaurantID int, term string, category Category) ([]MenuItem, error)
	MenuByCategory(ctx context.Context, restaurantID int, term string, category Category) ([]CategoryGroup, error)
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new catalog service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Restaurants retrieves all browsable restaurants.
func (s *service) Restaurants(ctx context.Context) ([]Restaurant, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Restaurants"),
	)

	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		log.Error("failed to list restaurants", zap.Error(err))
		return nil, err
	}

	log.Info("restaurants listed", zap.Int("count", len(restaurants)))
	return restaurants, nil
}

// Menu retrieves one restaurant's menu with search and category filter applied.
func (s *service) Menu(ctx context.Context, restaurantID int, term string, category Category) ([]MenuItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Menu"),
		zap.Int("restaurant_id", restaurantID),
	)

	items, err := s.repo.ListMenuItems(ctx, restaurantID)
	if err != nil {
		log.Error("failed to list menu items", zap.Error(err))
		return nil, err
	}

	filtered := FilterByCategory(Search(items, term), category)
	log.Info("menu fetched", zap.Int("count", len(filtered)))
	return filtered, nil
}

// MenuByCategory is Menu plus grouping, for category-sectioned views.
func (s *service) MenuByCategory(ctx context.Context, restaurantID int, term string, category Category) ([]CategoryGroup, error) {
	items, err := s.Menu(ctx, restaurantID, term, category)
	if err != nil {
		return nil, err
	}
	return GroupByCategory(items), nil
}
