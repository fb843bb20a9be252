// Package http exposes the order lifecycle over a REST API.
// It coordinates between HTTP handlers and application use cases, translating
// domain errors into status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server handles the order HTTP API.
type Server struct {
	// Command handlers
	checkoutOrderHandler     commands.CheckoutOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	getOrderHandler        queries.GetOrderQueryHandler
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	checkoutOrderHandler commands.CheckoutOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	getActiveOrdersHandler queries.GetActiveOrdersQueryHandler,
) *Server {
	return &Server{
		checkoutOrderHandler:     checkoutOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		getOrderHandler:          getOrderHandler,
		getActiveOrdersHandler:   getActiveOrdersHandler,
	}
}

// RegisterRoutes attaches the order API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.POST("/orders", s.CheckoutOrder)
	api.GET("/orders/active", s.GetActiveOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/status", s.ChangeOrderStatus)
}

// Error is the JSON body returned for failed requests.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckoutRequest is the body of POST /api/v1/orders.
type CheckoutRequest struct {
	CustomerID   string                `json:"customerId"`
	RestaurantID string                `json:"restaurantId"`
	Items        []CheckoutRequestItem `json:"items"`
}

// CheckoutRequestItem is one cart line in a checkout request.
// UnitPrice is a decimal string to avoid binary float round-off.
type CheckoutRequestItem struct {
	MenuItemID string `json:"menuItemId"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unitPrice"`
	Quantity   int    `json:"quantity"`
}

// CheckoutResponse is the body returned by a successful checkout.
type CheckoutResponse struct {
	ID                  string    `json:"id"`
	Number              string    `json:"number"`
	Status              string    `json:"status"`
	Total               string    `json:"total"`
	EstimatedDeliveryAt time.Time `json:"estimatedDeliveryAt"`
}

// ChangeStatusRequest is the body of POST /api/v1/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// CheckoutOrder handles POST /api/v1/orders - creates an order from a cart.
func (s *Server) CheckoutOrder(ctx echo.Context) error {
	var req CheckoutRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id: "+err.Error())
	}

	lineItems := make([]order.LineItem, len(req.Items))
	for i, item := range req.Items {
		lineItems[i], err = bindLineItem(item)
		if err != nil {
			return badRequest(ctx, "Invalid line item: "+err.Error())
		}
	}

	cmd, err := commands.NewCheckoutOrderCommand(customerID, restaurantID, lineItems)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.checkoutOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return checkoutError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CheckoutResponse{
		ID:                  created.ID().String(),
		Number:              created.Number().String(),
		Status:              created.Status().String(),
		Total:               created.Total().String(),
		EstimatedDeliveryAt: created.EstimatedDeliveryAt(),
	})
}

// ChangeOrderStatus handles POST /api/v1/orders/:id/status - advances or
// cancels an order.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req ChangeStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, target, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid status change: "+err.Error())
	}

	if err = s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return changeStatusError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrder handles GET /api/v1/orders/:id - retrieves one order with items.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	response, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		}
		return internalError(ctx, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves every order
// not yet delivered or cancelled.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetActiveOrdersQuery()

	orders, err := s.getActiveOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

func bindLineItem(item CheckoutRequestItem) (order.LineItem, error) {
	menuItemID, err := kernel.UUIDFromString(item.MenuItemID)
	if err != nil {
		return order.LineItem{}, err
	}

	price, err := decimal.NewFromString(item.UnitPrice)
	if err != nil {
		return order.LineItem{}, errs.NewValueIsInvalidErrorWithCause("unitPrice", err)
	}

	unitPrice, err := kernel.NewMoney(price)
	if err != nil {
		return order.LineItem{}, err
	}

	return order.NewLineItem(menuItemID, item.Name, unitPrice, item.Quantity)
}

// checkoutError maps checkout failures: an empty cart is a malformed request,
// a subtotal below the restaurant minimum is a valid request the business
// rejects, and an unknown restaurant is a 404.
func checkoutError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		return badRequest(ctx, err.Error())
	case errors.Is(err, services.ErrBelowMinimumOrder):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	default:
		return internalError(ctx, "Failed to create order")
	}
}

// changeStatusError maps status-change failures: illegal transitions and
// concurrent modifications are conflicts, a missing order is a 404.
func changeStatusError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, order.ErrInvalidStatusTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, order.ErrCancellationReasonNotAllowed):
		return badRequest(ctx, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	default:
		return internalError(ctx, "Failed to change order status")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
