package queries

import (
	"context"
	"database/sql"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads one order with its line items straight from the
// database.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order-details queries.
// Requires a GORM database connection for query execution.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ObjectNotFoundError when the order
// does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var (
		resp               GetOrderQueryResponse
		id                 uuid.UUID
		customerID         uuid.UUID
		restaurantID       uuid.UUID
		status             int
		cancellationReason sql.NullString
		subtotal           decimal.Decimal
		tax                decimal.Decimal
		deliveryFee        decimal.Decimal
		discount           decimal.Decimal
		total              decimal.Decimal
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			customer_id,
			restaurant_id,
			status,
			cancellation_reason,
			subtotal,
			tax,
			delivery_fee,
			discount,
			total,
			created_at,
			estimated_delivery_at,
			confirmed_at,
			preparing_at,
			ready_at,
			out_for_delivery_at,
			delivered_at,
			cancelled_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.Number,
		&customerID,
		&restaurantID,
		&status,
		&cancellationReason,
		&subtotal,
		&tax,
		&deliveryFee,
		&discount,
		&total,
		&resp.CreatedAt,
		&resp.EstimatedDeliveryAt,
		&resp.ConfirmedAt,
		&resp.PreparingAt,
		&resp.ReadyAt,
		&resp.OutForDeliveryAt,
		&resp.DeliveredAt,
		&resp.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderQueryResponse{}, err
	}

	resp.ID = id.String()
	resp.CustomerID = customerID.String()
	resp.RestaurantID = restaurantID.String()
	resp.Status = order.Status(status).String()
	if cancellationReason.Valid {
		resp.CancellationReason = &cancellationReason.String
	}
	resp.Subtotal = subtotal.StringFixed(2)
	resp.Tax = tax.StringFixed(2)
	resp.DeliveryFee = deliveryFee.StringFixed(2)
	resp.Discount = discount.StringFixed(2)
	resp.Total = total.StringFixed(2)
	resp.CreatedAt = resp.CreatedAt.UTC()
	resp.EstimatedDeliveryAt = resp.EstimatedDeliveryAt.UTC()

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderQueryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			menu_item_id,
			name,
			unit_price,
			quantity,
			line_total
		FROM order_items
		WHERE order_id = ?
		ORDER BY position
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderQueryItem, 0)
	for rows.Next() {
		var (
			item       GetOrderQueryItem
			menuItemID uuid.UUID
			unitPrice  decimal.Decimal
			lineTotal  decimal.Decimal
		)

		if err = rows.Scan(&menuItemID, &item.Name, &unitPrice, &item.Quantity, &lineTotal); err != nil {
			return nil, err
		}

		item.MenuItemID = menuItemID.String()
		item.UnitPrice = unitPrice.StringFixed(2)
		item.LineTotal = lineTotal.StringFixed(2)

		items = append(items, item)
	}

	return items, rows.Err()
}
