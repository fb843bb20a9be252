// Package restaurantrepo provides read access to restaurant fee
// configuration. Restaurants are owned by another part of the system; this
// package only maps the columns the order core consumes.
package restaurantrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RestaurantDTO represents the database structure for restaurant rows.
// Fee columns are nullable; a NULL means the system default applies. The
// delivery estimate is stored in whole minutes.
type RestaurantDTO struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                     string
	MinimumOrderAmount       *decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee              *decimal.Decimal `gorm:"type:numeric(12,2)"`
	TaxRate                  *decimal.Decimal `gorm:"type:numeric(5,4)"`
	EstimatedDeliveryMinutes *int
}

// TableName specifies the database table name for restaurant rows.
func (RestaurantDTO) TableName() string {
	return "restaurants"
}

// toFeeConfig converts the nullable fee columns to a FeeConfig, letting the
// domain fill in the defaults for NULL columns.
func toFeeConfig(dto RestaurantDTO) (restaurant.FeeConfig, error) {
	var minimumOrder, deliveryFee *kernel.Money

	if dto.MinimumOrderAmount != nil {
		m, err := kernel.NewMoney(*dto.MinimumOrderAmount)
		if err != nil {
			return restaurant.FeeConfig{}, err
		}
		minimumOrder = &m
	}

	if dto.DeliveryFee != nil {
		m, err := kernel.NewMoney(*dto.DeliveryFee)
		if err != nil {
			return restaurant.FeeConfig{}, err
		}
		deliveryFee = &m
	}

	var estimatedDeliveryTime *time.Duration
	if dto.EstimatedDeliveryMinutes != nil {
		d := time.Duration(*dto.EstimatedDeliveryMinutes) * time.Minute
		estimatedDeliveryTime = &d
	}

	return restaurant.NewFeeConfig(minimumOrder, deliveryFee, dto.TaxRate, estimatedDeliveryTime)
}
