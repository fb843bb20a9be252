package commands

import (
	"errors"
	"time"

	"fooddelivery/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrStaleAfterIsInvalid = errors.New("staleAfter must be greater than 0")
)

// StaleCheckoutReason is the cancellation reason recorded for checkouts that
// never completed payment.
const StaleCheckoutReason = "payment was not completed in time"

// CancelStaleOrdersCommand represents a request to cancel all Pending orders
// older than the given age. Issued periodically by the stale-checkout
// cancellation job.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	staleAfter time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a stale-order cleanup command.
// staleAfter is how long an order may remain Pending before it is considered
// abandoned; it must be positive.
func NewCancelStaleOrdersCommand(staleAfter time.Duration) (CancelStaleOrdersCommand, error) {
	if staleAfter <= 0 {
		return CancelStaleOrdersCommand{}, ErrStaleAfterIsInvalid
	}

	return CancelStaleOrdersCommand{
		staleAfter: staleAfter,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStaleOrdersCommandIsNotConstructed if validation fails.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// StaleAfter returns the Pending age threshold.
func (c CancelStaleOrdersCommand) StaleAfter() time.Duration {
	return c.staleAfter
}
