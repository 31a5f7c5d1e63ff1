package order

import (
	"context"
	"sort"
	"sync"

	"cravings-client/internal/logger"

	"go.uber.org/zap"
)

// Identity reports the logged-in user, for assignee checks.
type Identity interface {
	CurrentUsername() string
}

// IdentityFunc adapts a plain function to the Identity interface.
type IdentityFunc func() string

func (f IdentityFunc) CurrentUsername() string { return f() }

// Controller drives the order lifecycle. It keeps a fetched view of the
// role-scoped order list, validates every transition locally before
// issuing the command, and reconciles against the backend afterwards.
type Controller interface {
	Orders() []Order
	Refresh(ctx context.Context) ([]Order, error)
	Crew(ctx context.Context) ([]CrewMember, error)
	AssignDeliveryCrew(ctx context.Context, orderID, crewID int) (*Order, error)
	ReassignDeliveryCrew(ctx context.Context, orderID, crewID int) (*Order, error)
	MarkDelivered(ctx context.Context, orderID int) (*Order, error)
	Cancel(ctx context.Context, orderID int) (*Order, error)
	FilterByStatus(status Status) []Order
	CrewQueue(username string) []Order
}

// controller implements the Controller interface
type controller struct {
	repo     Repository
	identity Identity
	capacity int

	mu     sync.Mutex
	orders []Order
}

// Option configures a controller.
type Option func(*controller)

// WithCapacity overrides the delivery crew capacity.
func WithCapacity(capacity int) Option {
	return func(c *controller) {
		if capacity > 0 {
			c.capacity = capacity
		}
	}
}

// NewController creates a new order controller
func NewController(repo Repository, identity Identity, opts ...Option) Controller {
	c := &controller{
		repo:     repo,
		identity: identity,
		capacity: DefaultCrewCapacity,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Orders returns the last fetched view.
func (c *controller) Orders() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Refresh re-fetches the role-scoped order list.
func (c *controller) Refresh(ctx context.Context) ([]Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.reconcile(ctx); err != nil {
		return nil, err
	}
	return c.snapshot(), nil
}

// Crew lists delivery crew candidates with their current load.
func (c *controller) Crew(ctx context.Context) ([]CrewMember, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Crew"),
	)

	crew, err := c.repo.ListCrew(ctx)
	if err != nil {
		log.Error("failed to list crew", zap.Error(err))
		return nil, err
	}
	return crew, nil
}

// AssignDeliveryCrew hands a pending order to a crew member and moves it
// out for delivery. A member already carrying more than the capacity is
// refused and nothing changes.
func (c *controller) AssignDeliveryCrew(ctx context.Context, orderID, crewID int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AssignDeliveryCrew"),
		zap.Int("order_id", orderID),
		zap.Int("crew_id", crewID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.find(orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusPending {
		log.Warn("refused assignment", zap.String("status", string(current.Status)))
		return nil, &TransitionError{From: current.Status, To: StatusOutForDelivery}
	}

	if err := c.checkCapacity(ctx, crewID, log); err != nil {
		return nil, err
	}

	updated, err := c.repo.AssignDelivery(ctx, orderID, crewID)
	if err != nil {
		log.Error("failed to assign crew", zap.Error(err))
		return nil, err
	}
	if err := c.reconcile(ctx); err != nil {
		return nil, err
	}

	log.Info("order out for delivery", zap.String("crew", updated.DeliveryCrewName))
	return updated, nil
}

// ReassignDeliveryCrew moves an in-flight order to a different crew
// member. The status stays out_for_delivery.
func (c *controller) ReassignDeliveryCrew(ctx context.Context, orderID, crewID int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "ReassignDeliveryCrew"),
		zap.Int("order_id", orderID),
		zap.Int("crew_id", crewID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.find(orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusOutForDelivery {
		log.Warn("refused reassignment", zap.String("status", string(current.Status)))
		return nil, &TransitionError{From: current.Status, To: StatusOutForDelivery}
	}

	if err := c.checkCapacity(ctx, crewID, log); err != nil {
		return nil, err
	}

	updated, err := c.repo.AssignDelivery(ctx, orderID, crewID)
	if err != nil {
		log.Error("failed to reassign crew", zap.Error(err))
		return nil, err
	}
	if err := c.reconcile(ctx); err != nil {
		return nil, err
	}

	log.Info("order reassigned", zap.String("crew", updated.DeliveryCrewName))
	return updated, nil
}

// MarkDelivered completes an order. Only the assigned crew member may
// call it, and only while the order is out for delivery.
func (c *controller) MarkDelivered(ctx context.Context, orderID int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "MarkDelivered"),
		zap.Int("order_id", orderID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.find(orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != StatusOutForDelivery {
		log.Warn("refused delivery", zap.String("status", string(current.Status)))
		return nil, &TransitionError{From: current.Status, To: StatusDelivered}
	}
	if current.DeliveryCrewName != c.identity.CurrentUsername() {
		log.Warn("refused delivery", zap.String("assignee", current.DeliveryCrewName))
		return nil, ErrNotAssignee
	}

	updated, err := c.repo.MarkDelivered(ctx, orderID)
	if err != nil {
		log.Error("failed to mark delivered", zap.Error(err))
		return nil, err
	}
	if err := c.reconcile(ctx); err != nil {
		return nil, err
	}

	log.Info("order delivered")
	return updated, nil
}

// Cancel withdraws an order that has not left the restaurant yet.
func (c *controller) Cancel(ctx context.Context, orderID int) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Cancel"),
		zap.Int("order_id", orderID),
	)

	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.find(orderID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(StatusCancelled) {
		log.Warn("refused cancellation", zap.String("status", string(current.Status)))
		return nil, &TransitionError{From: current.Status, To: StatusCancelled}
	}

	updated, err := c.repo.UpdateStatus(ctx, orderID, StatusCancelled)
	if err != nil {
		log.Error("failed to cancel order", zap.Error(err))
		return nil, err
	}
	if err := c.reconcile(ctx); err != nil {
		return nil, err
	}

	log.Info("order cancelled")
	return updated, nil
}

// FilterByStatus returns the fetched orders in the given status.
func (c *controller) FilterByStatus(status Status) []Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Order, 0, len(c.orders))
	for _, o := range c.orders {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}

// CrewQueue returns the given crew member's active deliveries, oldest
// order first.
func (c *controller) CrewQueue(username string) []Order {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Order, 0, len(c.orders))
	for _, o := range c.orders {
		if o.Status == StatusOutForDelivery && o.DeliveryCrewName == username {
			out = append(out, o)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderDate.Before(out[j].OrderDate)
	})
	return out
}

// checkCapacity looks the candidate up in the fresh crew list and refuses
// anyone over the cap. Callers hold the mutex.
func (c *controller) checkCapacity(ctx context.Context, crewID int, log *zap.Logger) error {
	crew, err := c.repo.ListCrew(ctx)
	if err != nil {
		log.Error("failed to list crew", zap.Error(err))
		return err
	}

	for _, member := range crew {
		if member.ID != crewID {
			continue
		}
		if member.AssignedOrders > c.capacity {
			log.Warn("crew member over capacity",
				zap.String("crew", member.Username),
				zap.Int("assigned_orders", member.AssignedOrders),
			)
			return &CapacityError{Crew: member.Username, Active: member.AssignedOrders, Capacity: c.capacity}
		}
		return nil
	}
	return ErrCrewNotFound
}

// find returns the fetched order with the given id. Callers hold the mutex.
func (c *controller) find(orderID int) (*Order, error) {
	for i := range c.orders {
		if c.orders[i].ID == orderID {
			return &c.orders[i], nil
		}
	}
	return nil, ErrOrderNotFound
}

// reconcile replaces the fetched view with the backend's. Callers hold
// the mutex.
func (c *controller) reconcile(ctx context.Context) error {
	orders, err := c.repo.ListOrders(ctx)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to reconcile orders", zap.Error(err))
		return err
	}
	c.orders = orders
	return nil
}

func (c *controller) snapshot() []Order {
	out := make([]Order, len(c.orders))
	copy(out, c.orders)
	return out
}
