// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. This package implements the repository pattern for the
// order aggregate, handling the conversion between domain entities and
// database rows.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Money columns are numeric(12,2): amounts are rounded to two fractional
// digits at this boundary, never inside the domain.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number       string    `gorm:"uniqueIndex"`
	CustomerID   uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`

	Status             int `gorm:"index"`
	CancellationReason *string

	Subtotal    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Tax         decimal.Decimal `gorm:"type:numeric(12,2)"`
	DeliveryFee decimal.Decimal `gorm:"type:numeric(12,2)"`
	Discount    decimal.Decimal `gorm:"type:numeric(12,2)"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2)"`

	CreatedAt           time.Time `gorm:"index"`
	EstimatedDeliveryAt time.Time

	ConfirmedAt      *time.Time
	PreparingAt      *time.Time
	ReadyAt          *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time

	Version int

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO represents one immutable line-item row. Position preserves the
// cart order; items are written once with the order and never updated.
type OrderItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	MenuItemID uuid.UUID `gorm:"type:uuid"`
	Name       string
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Quantity   int
	LineTotal  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Position   int
}

// TableName specifies the database table name for line-item rows.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate to its database representation,
// rounding every money figure to two fractional digits.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.LineItems()
	itemDTOs := make([]OrderItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = OrderItemDTO{
			ID:         uuid.New(),
			OrderID:    aggregate.ID().Bytes(),
			MenuItemID: item.MenuItemID().Bytes(),
			Name:       item.Name(),
			UnitPrice:  item.UnitPrice().Rounded().Amount(),
			Quantity:   item.Quantity(),
			LineTotal:  item.Total().Rounded().Amount(),
			Position:   i,
		}
	}

	return OrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Number:              aggregate.Number().String(),
		CustomerID:          aggregate.CustomerID().Bytes(),
		RestaurantID:        aggregate.RestaurantID().Bytes(),
		Status:              int(aggregate.Status()),
		CancellationReason:  aggregate.CancellationReason(),
		Subtotal:            aggregate.Subtotal().Rounded().Amount(),
		Tax:                 aggregate.Tax().Rounded().Amount(),
		DeliveryFee:         aggregate.DeliveryFee().Rounded().Amount(),
		Discount:            aggregate.Discount().Rounded().Amount(),
		Total:               aggregate.Total().Rounded().Amount(),
		CreatedAt:           aggregate.CreatedAt(),
		EstimatedDeliveryAt: aggregate.EstimatedDeliveryAt(),
		ConfirmedAt:         aggregate.ConfirmedAt(),
		PreparingAt:         aggregate.PreparingAt(),
		ReadyAt:             aggregate.ReadyAt(),
		OutForDeliveryAt:    aggregate.OutForDeliveryAt(),
		DeliveredAt:         aggregate.DeliveredAt(),
		CancelledAt:         aggregate.CancelledAt(),
		Version:             aggregate.Version(),
		Items:               itemDTOs,
	}
}

// toDomain converts a database row set back to an order aggregate using
// RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	number, err := kernel.OrderNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	lineItems := make([]order.LineItem, len(dto.Items))
	for i, itemDTO := range dto.Items {
		menuItemID, itemErr := kernel.UUIDFromBytes(itemDTO.MenuItemID[:])
		if itemErr != nil {
			return nil, itemErr
		}

		unitPrice, itemErr := kernel.NewMoney(itemDTO.UnitPrice)
		if itemErr != nil {
			return nil, itemErr
		}

		lineItems[i], itemErr = order.NewLineItem(menuItemID, itemDTO.Name, unitPrice, itemDTO.Quantity)
		if itemErr != nil {
			return nil, itemErr
		}
	}

	amounts := make([]kernel.Money, 5)
	for i, raw := range []decimal.Decimal{dto.Subtotal, dto.Tax, dto.DeliveryFee, dto.Discount, dto.Total} {
		amounts[i], err = kernel.NewMoney(raw)
		if err != nil {
			return nil, err
		}
	}

	return order.RestoreOrder(
		id,
		number,
		customerID,
		restaurantID,
		lineItems,
		order.Status(dto.Status),
		dto.CancellationReason,
		amounts[0], amounts[1], amounts[2], amounts[3], amounts[4],
		dto.CreatedAt,
		dto.EstimatedDeliveryAt,
		order.StatusTimestamps{
			ConfirmedAt:      dto.ConfirmedAt,
			PreparingAt:      dto.PreparingAt,
			ReadyAt:          dto.ReadyAt,
			OutForDeliveryAt: dto.OutForDeliveryAt,
			DeliveredAt:      dto.DeliveredAt,
			CancelledAt:      dto.CancelledAt,
		},
		dto.Version,
	)
}
