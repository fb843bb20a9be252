package restaurantrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRestaurantRepository implements RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewGormRestaurantRepository creates a new GORM restaurant repository.
func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// GetFeeConfig returns the fee configuration for a restaurant with the
// system defaults applied to unset columns.
func (r *GormRestaurantRepository) GetFeeConfig(ctx context.Context, restaurantID kernel.UUID) (restaurant.FeeConfig, error) {
	if err := restaurantID.Validate(); err != nil {
		return restaurant.FeeConfig{}, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", restaurantID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return restaurant.FeeConfig{}, errs.NewObjectNotFoundError("restaurant", restaurantID.String())
		}
		return restaurant.FeeConfig{}, err
	}

	return toFeeConfig(dto)
}
