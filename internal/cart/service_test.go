package cart

import (
	"context"
	"errors"
	"testing"

	"cravings-client/internal/api"
	"cravings-client/internal/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Fetch(ctx context.Context) (*Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Cart), args.Error(1)
}

func (m *MockRepository) AddItem(ctx context.Context, menuItemID, quantity int) error {
	args := m.Called(ctx, menuItemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) UpdateItem(ctx context.Context, cartItemID, quantity int) error {
	args := m.Called(ctx, cartItemID, quantity)
	return args.Error(0)
}

func (m *MockRepository) DeleteItem(ctx context.Context, cartItemID int) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *MockRepository) CreateOrder(ctx context.Context, deliveryAddress string) (*order.Order, error) {
	args := m.Called(ctx, deliveryAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func cartWith(items ...CartItem) *Cart {
	c := &Cart{ID: 1, Items: items}
	c.Recompute()
	return c
}

func lineA(qty int) CartItem {
	return CartItem{ID: 10, MenuItemID: 100, MenuItemName: "Pad Thai", Price: decimal.NewFromInt(10), Quantity: qty}
}

// loadManager seeds the local snapshot through Refresh.
func loadManager(t *testing.T, mockRepo *MockRepository, initial *Cart) Manager {
	t.Helper()
	mgr := NewManager(mockRepo)
	mockRepo.On("Fetch", mock.Anything).Return(initial, nil).Once()
	_, err := mgr.Refresh(context.Background())
	require.NoError(t, err)
	return mgr
}

func TestCart_Recompute(t *testing.T) {
	c := &Cart{Items: []CartItem{
		{Price: decimal.NewFromInt(10), Quantity: 2, Subtotal: decimal.NewFromInt(999)},
		{Price: decimal.RequireFromString("4.50"), Quantity: 3},
	}}

	c.Recompute()

	assert.True(t, c.Items[0].Subtotal.Equal(decimal.NewFromInt(20)))
	assert.True(t, c.Items[1].Subtotal.Equal(decimal.RequireFromString("13.50")))
	assert.True(t, c.Total.Equal(decimal.RequireFromString("33.50")))
}

func TestManager_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - new line created", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith())

		mockRepo.On("AddItem", ctx, 100, 2).Return(nil).Once()
		mockRepo.On("Fetch", ctx).Return(cartWith(lineA(2)), nil).Once()

		got, err := mgr.AddItem(ctx, 100, 2)

		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)
		assert.True(t, got.Total.Equal(decimal.NewFromInt(20)))
		mockRepo.AssertExpectations(t)
	})

	t.Run("Success - existing line incremented, not duplicated", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(2)))

		mockRepo.On("UpdateItem", ctx, 10, 3).Return(nil).Once()
		mockRepo.On("Fetch", ctx).Return(cartWith(lineA(3)), nil).Once()

		got, err := mgr.AddItem(ctx, 100, 1)

		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 3, got.Items[0].Quantity)
		assert.True(t, got.Total.Equal(decimal.NewFromInt(30)))
		mockRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - quantity below one", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith())

		_, err := mgr.AddItem(ctx, 100, 0)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		mockRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - backend rejects mixed restaurants", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(1)))

		mockRepo.On("AddItem", ctx, 200, 1).Return(api.ErrBadRequest).Once()

		_, err := mgr.AddItem(ctx, 200, 1)

		assert.ErrorIs(t, err, api.ErrBadRequest)
		// local view keeps the previous reconciled state
		assert.Len(t, mgr.Cart().Items, 1)
	})
}

func TestManager_ChangeQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - increment", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(2)))

		mockRepo.On("UpdateItem", ctx, 10, 3).Return(nil).Once()
		mockRepo.On("Fetch", ctx).Return(cartWith(lineA(3)), nil).Once()

		got, err := mgr.ChangeQuantity(ctx, 10, 1)

		require.NoError(t, err)
		assert.True(t, got.Total.Equal(decimal.NewFromInt(30)))
	})

	t.Run("Success - dropping below one removes the line", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(1)))

		mockRepo.On("DeleteItem", ctx, 10).Return(nil).Once()
		mockRepo.On("Fetch", ctx).Return(cartWith(), nil).Once()

		got, err := mgr.ChangeQuantity(ctx, 10, -1)

		require.NoError(t, err)
		assert.Empty(t, got.Items)
		assert.True(t, got.Total.IsZero())
		mockRepo.AssertNotCalled(t, "UpdateItem", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error - unknown cart item", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith())

		_, err := mgr.ChangeQuantity(ctx, 99, 1)

		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestManager_RemoveItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(2)))

		mockRepo.On("DeleteItem", ctx, 10).Return(nil).Once()
		mockRepo.On("Fetch", ctx).Return(cartWith(), nil).Once()

		got, err := mgr.RemoveItem(ctx, 10)

		require.NoError(t, err)
		assert.Empty(t, got.Items)
	})

	t.Run("Success - already gone is not an error", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith())

		mockRepo.On("DeleteItem", ctx, 99).Return(api.ErrNotFound).Once()
		mockRepo.On("Fetch", ctx).Return(cartWith(), nil).Once()

		_, err := mgr.RemoveItem(ctx, 99)

		assert.NoError(t, err)
	})
}

func TestManager_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - cart cleared after confirmation", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(3)))
		placed := &order.Order{ID: 5, Status: order.StatusPending, Total: decimal.NewFromInt(30)}

		mockRepo.On("CreateOrder", ctx, "12 Elm Street").Return(placed, nil).Once()

		got, err := mgr.PlaceOrder(ctx, "12 Elm Street")

		require.NoError(t, err)
		assert.Equal(t, 5, got.ID)
		assert.Empty(t, mgr.Cart().Items)
		assert.True(t, mgr.Cart().Total.IsZero())
	})

	t.Run("Error - empty cart, no remote call", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith())

		_, err := mgr.PlaceOrder(ctx, "12 Elm Street")

		assert.ErrorIs(t, err, ErrEmptyCart)
		mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Error - blank address, no remote call", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(1)))

		_, err := mgr.PlaceOrder(ctx, "   ")

		assert.ErrorIs(t, err, ErrBlankAddress)
		mockRepo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	})

	t.Run("Error - backend failure keeps the cart", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mgr := loadManager(t, mockRepo, cartWith(lineA(2)))

		mockRepo.On("CreateOrder", ctx, "12 Elm Street").Return(nil, errors.New("boom")).Once()

		_, err := mgr.PlaceOrder(ctx, "12 Elm Street")

		assert.Error(t, err)
		assert.Len(t, mgr.Cart().Items, 1)
	})
}

// Running total across a whole session: two units at 10, one more added,
// then the line removed.
func TestManager_RunningTotal(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockRepository)
	mgr := loadManager(t, mockRepo, cartWith())

	mockRepo.On("AddItem", ctx, 100, 2).Return(nil).Once()
	mockRepo.On("Fetch", ctx).Return(cartWith(lineA(2)), nil).Once()

	got, err := mgr.AddItem(ctx, 100, 2)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(20)))

	mockRepo.On("UpdateItem", ctx, 10, 3).Return(nil).Once()
	mockRepo.On("Fetch", ctx).Return(cartWith(lineA(3)), nil).Once()

	got, err = mgr.AddItem(ctx, 100, 1)
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(30)))

	mockRepo.On("DeleteItem", ctx, 10).Return(nil).Once()
	mockRepo.On("Fetch", ctx).Return(cartWith(), nil).Once()

	got, err = mgr.RemoveItem(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.True(t, got.Total.IsZero())
	mockRepo.AssertExpectations(t)
}
