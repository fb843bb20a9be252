// Package queries contains read-only operations in the CQRS architecture.
// Query handlers read directly from the database and return flat response
// models; they never go through the domain aggregates or modify state.
package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves the full details of one order: line items, money
// figures and every lifecycle timestamp. Backs the customer's order
// confirmation page and the admin order-details view.
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for the given order id.
func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrderQueryIsNotConstructed if validation fails.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the identifier of the order to fetch.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderQueryResponse is the flat read model of one order, shaped for the
// JSON API. Identifiers are canonical UUID strings, money figures are
// formatted with two fractional digits and nil timestamps mean the order
// never reached that status.
type GetOrderQueryResponse struct {
	ID                 string  `json:"id"`
	Number             string  `json:"number"`
	CustomerID         string  `json:"customerId"`
	RestaurantID       string  `json:"restaurantId"`
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason"`

	Subtotal    string `json:"subtotal"`
	Tax         string `json:"tax"`
	DeliveryFee string `json:"deliveryFee"`
	Discount    string `json:"discount"`
	Total       string `json:"total"`

	CreatedAt           time.Time  `json:"createdAt"`
	EstimatedDeliveryAt time.Time  `json:"estimatedDeliveryAt"`
	ConfirmedAt         *time.Time `json:"confirmedAt"`
	PreparingAt         *time.Time `json:"preparingAt"`
	ReadyAt             *time.Time `json:"readyAt"`
	OutForDeliveryAt    *time.Time `json:"outForDeliveryAt"`
	DeliveredAt         *time.Time `json:"deliveredAt"`
	CancelledAt         *time.Time `json:"cancelledAt"`

	Items []GetOrderQueryItem `json:"items"`
}

// GetOrderQueryItem is one line item within GetOrderQueryResponse.
type GetOrderQueryItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
	LineTotal  string `json:"lineTotal"`
}
