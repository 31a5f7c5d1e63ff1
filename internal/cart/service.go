package cart

import (
	"context"
	"errors"
	"strings"
	"sync"

	"cravings-client/internal/api"
	"cravings-client/internal/logger"
	"cravings-client/internal/order"

	"go.uber.org/zap"
)

// Manager defines the customer-facing cart operations.
type Manager interface {
	Cart() Cart
	Refresh(ctx context.Context) (Cart, error)
	AddItem(ctx context.Context, menuItemID, quantity int) (Cart, error)
	ChangeQuantity(ctx context.Context, cartItemID, delta int) (Cart, error)
	RemoveItem(ctx context.Context, cartItemID int) (Cart, error)
	PlaceOrder(ctx context.Context, deliveryAddress string) (*order.Order, error)
}

// manager implements the Manager interface. Every mutation is a command
// followed by a re-fetch of the authoritative cart, so the local view never
// drifts from the backend. Mutations serialize on the mutex.
type manager struct {
	repo Repository

	mu   sync.Mutex
	cart Cart
}

// NewManager creates a new cart manager
func NewManager(repo Repository) Manager {
	return &manager{repo: repo}
}

// Cart returns the last reconciled snapshot.
func (m *manager) Cart() Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshot()
}

// Refresh re-fetches the cart from the backend.
func (m *manager) Refresh(ctx context.Context) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.reconcile(ctx); err != nil {
		return Cart{}, err
	}
	return m.snapshot(), nil
}

// AddItem puts quantity units of a menu item in the cart. Adding an item
// already present increments its line instead of creating a duplicate.
func (m *manager) AddItem(ctx context.Context, menuItemID, quantity int) (Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.Int("menu_item_id", menuItemID),
	)

	if quantity < 1 {
		log.Warn("rejected add", zap.Int("quantity", quantity))
		return Cart{}, ErrInvalidQuantity
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var err error
	if line := m.cart.FindByMenuItem(menuItemID); line != nil {
		err = m.repo.UpdateItem(ctx, line.ID, line.Quantity+quantity)
	} else {
		err = m.repo.AddItem(ctx, menuItemID, quantity)
	}
	if err != nil {
		log.Error("failed to add item", zap.Error(err))
		return Cart{}, err
	}

	if err := m.reconcile(ctx); err != nil {
		return Cart{}, err
	}
	log.Info("item added", zap.Int("quantity", quantity))
	return m.snapshot(), nil
}

// ChangeQuantity adjusts a cart line by delta. A resulting quantity below 1
// removes the line, so a zero quantity is never stored.
func (m *manager) ChangeQuantity(ctx context.Context, cartItemID, delta int) (Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ChangeQuantity"),
		zap.Int("cart_item_id", cartItemID),
	)

	m.mu.Lock()
	defer m.mu.Unlock()

	line := m.cart.Find(cartItemID)
	if line == nil {
		log.Warn("unknown cart item")
		return Cart{}, ErrItemNotFound
	}

	next := line.Quantity + delta
	var err error
	if next < 1 {
		err = m.repo.DeleteItem(ctx, cartItemID)
	} else {
		err = m.repo.UpdateItem(ctx, cartItemID, next)
	}
	if err != nil {
		log.Error("failed to change quantity", zap.Error(err))
		return Cart{}, err
	}

	if err := m.reconcile(ctx); err != nil {
		return Cart{}, err
	}
	log.Info("quantity changed", zap.Int("delta", delta))
	return m.snapshot(), nil
}

// RemoveItem deletes a cart line. Removing a line that is already gone is a
// success, so retries are safe.
func (m *manager) RemoveItem(ctx context.Context, cartItemID int) (Cart, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "RemoveItem"),
		zap.Int("cart_item_id", cartItemID),
	)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.repo.DeleteItem(ctx, cartItemID); err != nil && !errors.Is(err, api.ErrNotFound) {
		log.Error("failed to remove item", zap.Error(err))
		return Cart{}, err
	}

	if err := m.reconcile(ctx); err != nil {
		return Cart{}, err
	}
	log.Info("item removed")
	return m.snapshot(), nil
}

// PlaceOrder converts the cart into an order. Validation runs before any
// remote call, and the local cart is cleared only once the backend confirms.
func (m *manager) PlaceOrder(ctx context.Context, deliveryAddress string) (*order.Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
	)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cart.Empty() {
		log.Warn("rejected order for empty cart")
		return nil, ErrEmptyCart
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		log.Warn("rejected order with blank address")
		return nil, ErrBlankAddress
	}

	placed, err := m.repo.CreateOrder(ctx, deliveryAddress)
	if err != nil {
		log.Error("failed to place order", zap.Error(err))
		return nil, err
	}

	m.cart = Cart{ID: m.cart.ID}
	log.Info("order placed", zap.Int("order_id", placed.ID))
	return placed, nil
}

// reconcile replaces the local snapshot with the backend's cart and rederives
// the totals. Callers hold the mutex.
func (m *manager) reconcile(ctx context.Context) error {
	fresh, err := m.repo.Fetch(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to reconcile cart", zap.Error(err))
		return err
	}
	fresh.Recompute()
	m.cart = *fresh
	return nil
}

// snapshot deep-copies the cart so callers cannot mutate shared state.
// Callers hold the mutex.
func (m *manager) snapshot() Cart {
	out := m.cart
	out.Items = make([]CartItem, len(m.cart.Items))
	copy(out.Items, m.cart.Items)
	return out
}
