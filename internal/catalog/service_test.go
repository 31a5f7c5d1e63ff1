package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListRestaurants(ctx context.Context) ([]Restaurant, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Restaurant), args.Error(1)
}

func (m *MockRepository) ListMenuItems(ctx context.Context, restaurantID int) ([]MenuItem, error) {
	args := m.Called(ctx, restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]MenuItem), args.Error(1)
}

func TestService_Restaurants(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		expected := []Restaurant{{ID: 1, Name: "Bangkok Garden"}}

		mockRepo.On("ListRestaurants", ctx).Return(expected, nil).Once()

		got, err := svc.Restaurants(ctx)

		assert.NoError(t, err)
		assert.Equal(t, expected, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - repository failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)
		remoteErr := errors.New("network failure")

		mockRepo.On("ListRestaurants", ctx).Return(nil, remoteErr).Once()

		_, err := svc.Restaurants(ctx)

		assert.ErrorIs(t, err, remoteErr)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Menu(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - search and filter applied", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("ListMenuItems", ctx, 3).Return(sampleMenu(), nil).Once()

		got, err := svc.Menu(ctx, 3, "thai", CategoryMain)

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Pad Thai", got[0].Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Error - repository failure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("ListMenuItems", ctx, 3).Return(nil, errors.New("boom")).Once()

		_, err := svc.Menu(ctx, 3, "", CategoryAll)

		assert.Error(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_MenuByCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - grouped in display order", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("ListMenuItems", ctx, 3).Return(sampleMenu(), nil).Once()

		groups, err := svc.MenuByCategory(ctx, 3, "", CategoryAll)

		require.NoError(t, err)
		require.Len(t, groups, 5)
		assert.Equal(t, CategoryAppetizer, groups[0].Category)
		mockRepo.AssertExpectations(t)
	})
}
