package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// fixedClock is a ports.Clock pinned to one instant.
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}

func mustLineItem(t *testing.T, name, unitPrice string, quantity int) order.LineItem {
	t.Helper()
	item, err := order.NewLineItem(kernel.NewUUID(), name, mustMoney(t, unitPrice), quantity)
	require.NoError(t, err)
	return item
}

type MockCheckoutOrderRepository struct{ mock.Mock }

func (m *MockCheckoutOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockCheckoutOrderRepository) Update(_ context.Context, _ *order.Order) error { return nil }
func (m *MockCheckoutOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCheckoutOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCheckoutOrderRepository) GetAllPendingBefore(_ context.Context, _ time.Time) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockCheckoutOrderRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

type MockCheckoutRestaurantRepository struct{ mock.Mock }

func (m *MockCheckoutRestaurantRepository) GetFeeConfig(ctx context.Context, restaurantID kernel.UUID) (restaurant.FeeConfig, error) {
	args := m.Called(ctx, restaurantID)
	return args.Get(0).(restaurant.FeeConfig), args.Error(1)
}

type MockCheckoutUoW struct{ mock.Mock }

func (m *MockCheckoutUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockCheckoutUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}
func (m *MockCheckoutUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

type MockCheckoutUoWFactory struct{ mock.Mock }

func (m *MockCheckoutUoWFactory) Create() commands.CheckoutUoW {
	args := m.Called()
	return args.Get(0).(commands.CheckoutUoW)
}

func TestCheckoutOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	restaurantID := kernel.NewUUID()
	items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}
	cmd, err := commands.NewCheckoutOrderCommand(kernel.NewUUID(), restaurantID, items)
	require.NoError(t, err)

	orderRepo := new(MockCheckoutOrderRepository)
	restaurantRepo := new(MockCheckoutRestaurantRepository)
	uow := new(MockCheckoutUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("GetFeeConfig", ctx, restaurantID).Return(restaurant.DefaultFeeConfig(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountCreatedBetween", ctx, dayStart, dayStart.Add(24*time.Hour)).Return(41, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, fixedClock{now})
	created, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, order.Pending, created.Status())
	assert.Equal(t, "ORD-2025-000042", created.Number().String())
	assert.Equal(t, "380.00", created.Total().String())
	assert.Equal(t, now, created.CreatedAt())
	assert.Equal(t, now.Add(45*time.Minute), created.EstimatedDeliveryAt())
	orderRepo.AssertExpectations(t)
	restaurantRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestCheckoutOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CheckoutOrderCommand{} // not constructed properly
	factory := new(MockCheckoutUoWFactory)
	h := commands.NewCheckoutOrderCommandHandler(factory, fixedClock{time.Now()})

	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCheckoutOrderCommandHandler_Handle_EmptyCart(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewCheckoutOrderCommand(kernel.NewUUID(), restaurantID, nil)
	require.NoError(t, err)

	orderRepo := new(MockCheckoutOrderRepository)
	restaurantRepo := new(MockCheckoutRestaurantRepository)
	uow := new(MockCheckoutUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("GetFeeConfig", ctx, restaurantID).Return(restaurant.DefaultFeeConfig(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountCreatedBetween", ctx, mock.Anything, mock.Anything).Return(0, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, fixedClock{time.Now()})
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrEmptyCart)
	uow.AssertExpectations(t)
}

func TestCheckoutOrderCommandHandler_Handle_BelowMinimum(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	items := []order.LineItem{mustLineItem(t, "Espresso", "10", 1)}
	cmd, err := commands.NewCheckoutOrderCommand(kernel.NewUUID(), restaurantID, items)
	require.NoError(t, err)

	orderRepo := new(MockCheckoutOrderRepository)
	restaurantRepo := new(MockCheckoutRestaurantRepository)
	uow := new(MockCheckoutUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("GetFeeConfig", ctx, restaurantID).Return(restaurant.DefaultFeeConfig(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountCreatedBetween", ctx, mock.Anything, mock.Anything).Return(0, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, fixedClock{time.Now()})
	_, err = h.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrBelowMinimumOrder)
}

func TestCheckoutOrderCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	items := []order.LineItem{mustLineItem(t, "Margherita", "150", 1)}
	cmd, err := commands.NewCheckoutOrderCommand(kernel.NewUUID(), kernel.NewUUID(), items)
	require.NoError(t, err)

	uow := new(MockCheckoutUoW)
	factory := new(MockCheckoutUoWFactory)
	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	h := commands.NewCheckoutOrderCommandHandler(factory, fixedClock{time.Now()})
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestCheckoutOrderCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}
	cmd, err := commands.NewCheckoutOrderCommand(kernel.NewUUID(), restaurantID, items)
	require.NoError(t, err)

	orderRepo := new(MockCheckoutOrderRepository)
	restaurantRepo := new(MockCheckoutRestaurantRepository)
	uow := new(MockCheckoutUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("GetFeeConfig", ctx, restaurantID).Return(restaurant.DefaultFeeConfig(), nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("CountCreatedBetween", ctx, mock.Anything, mock.Anything).Return(0, nil).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("insert failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCheckoutUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCheckoutOrderCommandHandler(factory, fixedClock{time.Now()})
	_, err = h.Handle(ctx, cmd)
	require.Error(t, err)
	uow.AssertExpectations(t)
}
