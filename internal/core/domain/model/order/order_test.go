package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func mustOrderNumber(t *testing.T) kernel.OrderNumber {
	t.Helper()
	n, err := kernel.GenerateOrderNumber(2025, 1)
	require.NoError(t, err)
	return n
}

func newPendingOrder(t *testing.T) *order.Order {
	t.Helper()
	items := []order.LineItem{
		mustLineItem(t, "Margherita", "150", 2),
	}
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	o, err := order.NewOrder(
		kernel.NewUUID(),
		mustOrderNumber(t),
		kernel.NewUUID(),
		kernel.NewUUID(),
		items,
		mustMoney(t, "300"),
		mustMoney(t, "30"),
		mustMoney(t, "50"),
		createdAt,
		createdAt.Add(45*time.Minute),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create pending order with derived total", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, "300.00", o.Subtotal().String())
		assert.Equal(t, "30.00", o.Tax().String())
		assert.Equal(t, "50.00", o.DeliveryFee().String())
		assert.True(t, o.Discount().IsZero())
		assert.Equal(t, "380.00", o.Total().String())
		assert.Equal(t, 0, o.Version())
		assert.Nil(t, o.CancellationReason())
		assert.Nil(t, o.ConfirmedAt())
		assert.Equal(t, o.CreatedAt().Add(45*time.Minute), o.EstimatedDeliveryAt())
	})

	t.Run("should fail with empty line items", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			nil,
			mustMoney(t, "0"),
			mustMoney(t, "0"),
			mustMoney(t, "0"),
			time.Now(),
			time.Now().Add(45*time.Minute),
		)

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrLineItemsAreRequired)
	})

	t.Run("should fail when subtotal does not match items", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}

		_, err := order.NewOrder(
			kernel.NewUUID(),
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			items,
			mustMoney(t, "299"),
			mustMoney(t, "30"),
			mustMoney(t, "50"),
			time.Now(),
			time.Now().Add(45*time.Minute),
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "subtotal is invalid")
	})

	t.Run("should fail with invalid identifiers", func(t *testing.T) {
		var invalidID kernel.UUID
		items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}

		_, err := order.NewOrder(
			invalidID,
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			items,
			mustMoney(t, "300"),
			mustMoney(t, "30"),
			mustMoney(t, "50"),
			time.Now(),
			time.Now().Add(45*time.Minute),
		)

		require.Error(t, err)
	})

	t.Run("should fail with zero createdAt", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}

		_, err := order.NewOrder(
			kernel.NewUUID(),
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			items,
			mustMoney(t, "300"),
			mustMoney(t, "30"),
			mustMoney(t, "50"),
			time.Time{},
			time.Now().Add(45*time.Minute),
		)

		require.Error(t, err)
	})

	t.Run("should fail with zero delivery estimate", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}

		_, err := order.NewOrder(
			kernel.NewUUID(),
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			items,
			mustMoney(t, "300"),
			mustMoney(t, "30"),
			mustMoney(t, "50"),
			time.Now(),
			time.Time{},
		)

		require.Error(t, err)
	})
}

func TestOrderTransitionTo(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	t.Run("happy path stamps one timestamp per status", func(t *testing.T) {
		o := newPendingOrder(t)

		steps := []struct {
			target order.Status
			stamp  func() *time.Time
		}{
			{order.Confirmed, o.ConfirmedAt},
			{order.Preparing, o.PreparingAt},
			{order.Ready, o.ReadyAt},
			{order.OutForDelivery, o.OutForDeliveryAt},
			{order.Delivered, o.DeliveredAt},
		}

		for i, step := range steps {
			stepTime := now.Add(time.Duration(i) * time.Minute)
			require.NoError(t, o.TransitionTo(step.target, stepTime, ""))
			assert.Equal(t, step.target, o.Status())
			require.NotNil(t, step.stamp())
			assert.Equal(t, stepTime, *step.stamp())
		}

		// Earlier timestamps survive the whole walk.
		assert.Equal(t, now, *o.ConfirmedAt())
		assert.Nil(t, o.CancelledAt())
	})

	t.Run("illegal transition leaves the order unmodified", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.TransitionTo(order.Preparing, now, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Pending, o.Status())
		assert.Nil(t, o.PreparingAt())

		var transitionErr *order.InvalidStatusTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, order.Pending, transitionErr.Current)
		assert.Equal(t, order.Preparing, transitionErr.Requested)
	})

	t.Run("terminal statuses reject every transition", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(now, "customer changed their mind"))

		err := o.TransitionTo(order.Confirmed, now, "")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrInvalidStatusTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("cancel captures reason and timestamp", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Cancel(now, "out of stock"))

		assert.Equal(t, order.Cancelled, o.Status())
		require.NotNil(t, o.CancellationReason())
		assert.Equal(t, "out of stock", *o.CancellationReason())
		require.NotNil(t, o.CancelledAt())
		assert.Equal(t, now, *o.CancelledAt())
	})

	t.Run("cancel without reason leaves reason nil", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.Cancel(now, ""))

		assert.Nil(t, o.CancellationReason())
	})

	t.Run("reason with non-cancelled target is rejected", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.TransitionTo(order.Confirmed, now, "some reason")

		require.Error(t, err)
		assert.ErrorIs(t, err, order.ErrCancellationReasonNotAllowed)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("timestamps are normalized to UTC", func(t *testing.T) {
		o := newPendingOrder(t)
		local := time.Date(2025, 6, 1, 15, 30, 0, 0, time.FixedZone("UTC+3", 3*3600))

		require.NoError(t, o.TransitionTo(order.Confirmed, local, ""))

		require.NotNil(t, o.ConfirmedAt())
		assert.Equal(t, time.UTC, o.ConfirmedAt().Location())
		assert.True(t, o.ConfirmedAt().Equal(local))
	})

	t.Run("pricing is frozen across transitions", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.TransitionTo(order.Confirmed, now, ""))

		assert.Equal(t, "380.00", o.Total().String())
		assert.Equal(t, "300.00", o.Subtotal().String())
	})
}

func TestOrderApplyDiscount(t *testing.T) {
	t.Run("should re-derive total", func(t *testing.T) {
		o := newPendingOrder(t)

		require.NoError(t, o.ApplyDiscount(mustMoney(t, "80")))

		assert.Equal(t, "80.00", o.Discount().String())
		assert.Equal(t, "300.00", o.Total().String())
	})

	t.Run("should reject discount exceeding the gross total", func(t *testing.T) {
		o := newPendingOrder(t)

		err := o.ApplyDiscount(mustMoney(t, "380.01"))

		require.Error(t, err)
		assert.Equal(t, "380.00", o.Total().String())
	})

	t.Run("should reject discount on terminal order", func(t *testing.T) {
		o := newPendingOrder(t)
		require.NoError(t, o.Cancel(time.Now(), ""))

		require.Error(t, o.ApplyDiscount(mustMoney(t, "10")))
	})
}

func TestRestoreOrder(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	confirmedAt := now.Add(5 * time.Minute)

	t.Run("should rebuild order from stored state", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}
		reason := "kitchen closed"

		o, err := order.RestoreOrder(
			kernel.NewUUID(),
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			items,
			order.Cancelled,
			&reason,
			mustMoney(t, "300"), mustMoney(t, "30"), mustMoney(t, "50"),
			mustMoney(t, "0"), mustMoney(t, "380"),
			now,
			now.Add(45*time.Minute),
			order.StatusTimestamps{
				ConfirmedAt: &confirmedAt,
				CancelledAt: &confirmedAt,
			},
			3,
		)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, order.Cancelled, o.Status())
		assert.Equal(t, "kitchen closed", *o.CancellationReason())
		assert.Equal(t, 3, o.Version())
		assert.Equal(t, confirmedAt, *o.ConfirmedAt())
		assert.Equal(t, now.Add(45*time.Minute), o.EstimatedDeliveryAt())
		assert.Nil(t, o.PreparingAt())
	})

	t.Run("should reject invalid stored status", func(t *testing.T) {
		items := []order.LineItem{mustLineItem(t, "Margherita", "150", 2)}

		_, err := order.RestoreOrder(
			kernel.NewUUID(),
			mustOrderNumber(t),
			kernel.NewUUID(),
			kernel.NewUUID(),
			items,
			order.Unknown,
			nil,
			mustMoney(t, "300"), mustMoney(t, "30"), mustMoney(t, "50"),
			mustMoney(t, "0"), mustMoney(t, "380"),
			now,
			now.Add(45*time.Minute),
			order.StatusTimestamps{},
			0,
		)

		require.Error(t, err)
	})
}

func TestOrderValidate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var o order.Order

		require.Error(t, o.Validate())
	})

	t.Run("nil order is not constructed", func(t *testing.T) {
		var o *order.Order

		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}
