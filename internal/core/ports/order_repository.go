// Package ports defines the contracts between the order core and its
// infrastructure collaborators: repositories, the unit of work and the clock.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// The order core is pure and holds no locks, so the repository carries the
// concurrency obligations documented on each method: day-scoped order
// counting must be serialized against inserts, and updates must be
// conditional on the version the aggregate was read at.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its line items.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable state of an existing order (status,
	// timestamps, cancellation reason, discount, total) conditional on the
	// version the aggregate was read at, and bumps the version.
	//
	// Returns errs.VersionIsInvalidError when another writer updated the
	// order in between (read-modify-write race), and
	// errs.ObjectNotFoundError when the order does not exist. Line items are
	// immutable and never written by Update.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier, including
	// its line items. Returns errs.ObjectNotFoundError when no order with
	// that id exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllActive retrieves all orders not in a terminal status, oldest
	// first.
	GetAllActive(ctx context.Context) ([]*order.Order, error)

	// GetAllPendingBefore retrieves orders still in Pending status created
	// strictly before the cutoff. Used by the stale-checkout cancellation
	// job.
	GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error)

	// CountCreatedBetween returns how many orders were created in
	// [from, to). Callers use it with UTC day bounds to allocate the next
	// order-number sequence; it must run inside the same transaction as the
	// subsequent Add, and implementations must serialize concurrent counts
	// over the same window until that transaction ends so that two checkouts
	// cannot observe the same count.
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error)
}
