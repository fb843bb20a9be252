package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler retrieves orders still moving through the
// lifecycle, i.e. everything not Delivered or Cancelled.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active-order queries.
// Requires a GORM database connection for query execution.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted oldest first so the
// back-office works the queue in arrival order.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			status,
			total,
			created_at
		FROM orders
		WHERE status NOT IN (?, ?)
		ORDER BY created_at
	`, order.Delivered, order.Cancelled).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp   GetActiveOrdersQueryResponse
			id     uuid.UUID
			status int
			total  decimal.Decimal
		)

		if err = rows.Scan(&id, &resp.Number, &status, &total, &resp.CreatedAt); err != nil {
			return nil, err
		}

		resp.ID = id.String()
		resp.Status = order.Status(status).String()
		resp.Total = total.StringFixed(2)
		resp.CreatedAt = resp.CreatedAt.UTC()

		orders = append(orders, resp)
	}

	return orders, rows.Err()
}
