package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
)

// RestaurantRepository provides read access to the restaurant-side
// configuration the order core consumes. Restaurants themselves are owned by
// another part of the system.
type RestaurantRepository interface {
	// GetFeeConfig returns the fee configuration for a restaurant with the
	// system defaults applied to unset fields. Returns
	// errs.ObjectNotFoundError when the restaurant does not exist.
	GetFeeConfig(ctx context.Context, restaurantID kernel.UUID) (restaurant.FeeConfig, error)
}
