package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStaleOrderRepository struct{ mock.Mock }

func (m *MockStaleOrderRepository) Add(_ context.Context, _ *order.Order) error { return nil }
func (m *MockStaleOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockStaleOrderRepository) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockStaleOrderRepository) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockStaleOrderRepository) GetAllPendingBefore(ctx context.Context, cutoff time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]*order.Order), args.Error(1)
}
func (m *MockStaleOrderRepository) CountCreatedBetween(_ context.Context, _, _ time.Time) (int, error) {
	return 0, errors.New("not implemented in mock")
}

type MockStaleUoW struct{ mock.Mock }

func (m *MockStaleUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStaleUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStaleUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockStaleUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockStaleUoWFactory struct{ mock.Mock }

func (m *MockStaleUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func TestCancelStaleOrdersCommandHandler_Handle_CancelsStaleOrders(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	cutoff := now.Add(-30 * time.Minute)
	cmd, err := commands.NewCancelStaleOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	first := pendingOrder(t)
	second := pendingOrder(t)

	repo := new(MockStaleOrderRepository)
	uow := new(MockStaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllPendingBefore", ctx, cutoff).Return([]*order.Order{first, second}, nil).Once(),
		repo.On("Update", ctx, first).Return(nil).Once(),
		repo.On("Update", ctx, second).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, fixedClock{now})
	require.NoError(t, h.Handle(ctx, cmd))

	for _, o := range []*order.Order{first, second} {
		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancellationReason())
		assert.Equal(t, commands.StaleCheckoutReason, *o.CancellationReason())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, now, *o.CancelledAt())
	}
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCancelStaleOrdersCommandHandler_Handle_NothingStale(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCancelStaleOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	repo := new(MockStaleOrderRepository)
	uow := new(MockStaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllPendingBefore", ctx, mock.Anything).Return([]*order.Order{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, fixedClock{now})
	require.NoError(t, h.Handle(ctx, cmd))

	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelStaleOrdersCommandHandler_Handle_UpdateErrorAbortsBatch(t *testing.T) {
	ctx := t.Context()
	now := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	cmd, err := commands.NewCancelStaleOrdersCommand(30 * time.Minute)
	require.NoError(t, err)

	stale := pendingOrder(t)

	repo := new(MockStaleOrderRepository)
	uow := new(MockStaleUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("GetAllPendingBefore", ctx, mock.Anything).Return([]*order.Order{stale}, nil).Once(),
		repo.On("Update", ctx, stale).Return(errors.New("update failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockStaleUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCancelStaleOrdersCommandHandler(factory, fixedClock{now})
	require.Error(t, h.Handle(ctx, cmd))

	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCancelStaleOrdersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.CancelStaleOrdersCommand{} // not constructed properly
	factory := new(MockStaleUoWFactory)
	h := commands.NewCancelStaleOrdersCommandHandler(factory, fixedClock{time.Now()})

	require.Error(t, h.Handle(ctx, cmd))
}
