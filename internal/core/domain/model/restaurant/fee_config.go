// Package restaurant holds the restaurant-side configuration consumed by the
// order core. The order engine does not own restaurants; it only reads their
// fee configuration at checkout.
package restaurant

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// System-wide defaults applied when a restaurant leaves a fee field unset.
// The 50-unit minimum-order floor and delivery fee and the 10% tax rate come
// from the platform's terms of service; 45 minutes is the platform-wide
// delivery estimate for restaurants that never measured their own.
var (
	defaultMinimumOrder          = decimal.NewFromInt(50)
	defaultDeliveryFee           = decimal.NewFromInt(50)
	defaultTaxRate               = decimal.NewFromFloat(0.10)
	defaultEstimatedDeliveryTime = 45 * time.Minute
)

// ErrFeeConfigIsNotConstructed is returned when a FeeConfig was not created
// via NewFeeConfig.
var ErrFeeConfigIsNotConstructed = errs.NewValueIsRequiredError(
	"FeeConfig must be created via NewFeeConfig",
)

// FeeConfig is the per-restaurant checkout configuration: the minimum order
// amount, the flat delivery fee, the tax rate and the estimated delivery
// time promised to the customer. Each field is optional on the restaurant
// record and falls back to the system-wide default when unset.
type FeeConfig struct {
	minimumOrder          kernel.Money
	deliveryFee           kernel.Money
	taxRate               decimal.Decimal
	estimatedDeliveryTime time.Duration

	isConstructed bool
}

// NewFeeConfig builds a FeeConfig from a restaurant's optional overrides.
// A nil field selects the system default. The tax rate must be a fraction in
// [0, 1) and the estimated delivery time must be positive.
func NewFeeConfig(
	minimumOrder, deliveryFee *kernel.Money,
	taxRate *decimal.Decimal,
	estimatedDeliveryTime *time.Duration,
) (FeeConfig, error) {
	cfg := FeeConfig{isConstructed: true}

	if minimumOrder != nil {
		cfg.minimumOrder = *minimumOrder
	} else {
		m, err := kernel.NewMoney(defaultMinimumOrder)
		if err != nil {
			return FeeConfig{}, err
		}
		cfg.minimumOrder = m
	}

	if deliveryFee != nil {
		cfg.deliveryFee = *deliveryFee
	} else {
		f, err := kernel.NewMoney(defaultDeliveryFee)
		if err != nil {
			return FeeConfig{}, err
		}
		cfg.deliveryFee = f
	}

	rate := defaultTaxRate
	if taxRate != nil {
		rate = *taxRate
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return FeeConfig{}, errs.NewValueIsInvalidErrorWithCause(
			"tax rate is invalid",
			fmt.Errorf("%s is not a fraction in [0, 1)", rate),
		)
	}
	cfg.taxRate = rate

	estimate := defaultEstimatedDeliveryTime
	if estimatedDeliveryTime != nil {
		estimate = *estimatedDeliveryTime
	}
	if estimate <= 0 {
		return FeeConfig{}, errs.NewValueIsInvalidErrorWithCause(
			"estimated delivery time is invalid",
			fmt.Errorf("%s is not positive", estimate),
		)
	}
	cfg.estimatedDeliveryTime = estimate

	return cfg, nil
}

// DefaultFeeConfig returns a FeeConfig consisting entirely of the system
// defaults. Used when an order targets a restaurant without fee overrides.
func DefaultFeeConfig() FeeConfig {
	cfg, err := NewFeeConfig(nil, nil, nil, nil)
	if err != nil {
		// The defaults are constants; they always validate.
		panic(err)
	}
	return cfg
}

// MinimumOrder returns the minimum subtotal required to check out.
func (c FeeConfig) MinimumOrder() kernel.Money {
	return c.minimumOrder
}

// DeliveryFee returns the flat delivery fee added at checkout.
func (c FeeConfig) DeliveryFee() kernel.Money {
	return c.deliveryFee
}

// TaxRate returns the tax rate as a fraction, e.g. 0.10.
func (c FeeConfig) TaxRate() decimal.Decimal {
	return c.taxRate
}

// EstimatedDeliveryTime returns how long the restaurant expects an order to
// take from checkout to delivery.
func (c FeeConfig) EstimatedDeliveryTime() time.Duration {
	return c.estimatedDeliveryTime
}

// Validate ensures the FeeConfig was created via NewFeeConfig.
func (c FeeConfig) Validate() error {
	if !c.isConstructed {
		return ErrFeeConfigIsNotConstructed
	}
	return nil
}
