package order

import (
	"errors"
	"fmt"
)

var (
	// -- Validation & Input --
	ErrOrderNotFound = errors.New("order not found")
	ErrCrewNotFound  = errors.New("delivery crew member not found")
	ErrNotAssignee   = errors.New("order is assigned to a different crew member")
)

// TransitionError reports an illegal status move. The order is left
// untouched when one is returned.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

// CapacityError reports a crew member refused for carrying too many
// active deliveries.
type CapacityError struct {
	Crew     string
	Active   int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("crew member %s has %d active deliveries, capacity is %d", e.Crew, e.Active, e.Capacity)
}
