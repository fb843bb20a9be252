package commands

import (
	"context"

	"fooddelivery/internal/core/ports"
)

// CancelStaleOrdersCommandHandler cancels Pending orders whose checkout was
// abandoned. Each stale order is cancelled through the same state machine as
// any other transition, so the Cancelled timestamp and reason are recorded
// consistently.
type CancelStaleOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewCancelStaleOrdersCommandHandler creates a handler for stale-order
// cleanup.
func NewCancelStaleOrdersCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle cancels every Pending order created before now minus the command's
// StaleAfter threshold. All cancellations commit atomically; a version
// conflict on any order aborts the batch, and the next job run picks the
// remainder up again.
func (h *CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now().UTC()
	cutoff := now.Add(-cmd.StaleAfter())

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	staleOrders, err := orderRepo.GetAllPendingBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	for _, aggregate := range staleOrders {
		if err = aggregate.Cancel(now, StaleCheckoutReason); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
