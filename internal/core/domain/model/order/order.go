package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrLineItemsAreRequired is returned when an order is constructed
	// without any line items. Orders are non-empty for their whole lifetime.
	ErrLineItemsAreRequired = errs.NewValueIsRequiredError("order line items")

	// ErrCancellationReasonNotAllowed is returned when a cancellation reason
	// is supplied for a transition whose target is not Cancelled.
	ErrCancellationReasonNotAllowed = errs.NewValueIsInvalidError(
		"cancellation reason is only allowed when cancelling",
	)
)

// Order is the aggregate root of the order lifecycle. It holds the immutable
// line-item snapshots, the money figures frozen at checkout, the current
// lifecycle status and one timestamp per status the order has reached.
//
// Order maintains these invariants:
//   - The line-item list is non-empty and never mutated after creation
//   - subtotal equals the sum of the line-item totals
//   - total equals subtotal + tax + deliveryFee - discount, never negative
//   - Status changes follow the canonical transition table; each legal
//     transition stamps exactly the timestamp matching the new status and
//     earlier timestamps are never cleared
//   - The cancellation reason is set only when the order becomes Cancelled
//
// Pricing is frozen at creation: transitions never touch subtotal, tax,
// delivery fee or total. The discount is the one externally settable money
// field (ApplyDiscount), which re-derives the total to keep the invariant.
//
// The aggregate performs no I/O and holds no locks. Concurrent transitions
// on the same order id must be serialized by the persistence collaborator;
// Version supports optimistic concurrency for that purpose.
type Order struct {
	id           kernel.UUID
	number       kernel.OrderNumber
	customerID   kernel.UUID
	restaurantID kernel.UUID

	lineItems []LineItem

	status             Status
	cancellationReason *string

	subtotal    kernel.Money
	tax         kernel.Money
	deliveryFee kernel.Money
	discount    kernel.Money
	total       kernel.Money

	createdAt           time.Time
	estimatedDeliveryAt time.Time

	confirmedAt      *time.Time
	preparingAt      *time.Time
	readyAt          *time.Time
	outForDeliveryAt *time.Time
	deliveredAt      *time.Time
	cancelledAt      *time.Time

	version int

	isConstructed bool
}

// NewOrder creates a new Order in the Pending status.
//
// The money figures are supplied by the pricing calculator
// (services.OrderFactory); NewOrder re-checks that subtotal matches the line
// items and derives the total with a zero discount. createdAt and
// estimatedDeliveryAt are normalized to UTC.
//
// Returns a validation error if any identifier is invalid, the line-item
// list is empty, the subtotal does not match the items, or either time is
// the zero time.
func NewOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []LineItem,
	subtotal kernel.Money,
	tax kernel.Money,
	deliveryFee kernel.Money,
	createdAt time.Time,
	estimatedDeliveryAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		discount:      kernel.ZeroMoney(),
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLineItems(lineItems),
		o.setCreatedAt(createdAt),
		o.setEstimatedDeliveryAt(estimatedDeliveryAt),
	); err != nil {
		return nil, err
	}

	if err := o.setAmounts(subtotal, tax, deliveryFee); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence without re-deriving the
// money figures: stored amounts are rounded at the persistence boundary, so
// they are taken as-is. The status must be a valid lifecycle state and the
// line-item list non-empty.
func RestoreOrder(
	id kernel.UUID,
	number kernel.OrderNumber,
	customerID kernel.UUID,
	restaurantID kernel.UUID,
	lineItems []LineItem,
	status Status,
	cancellationReason *string,
	subtotal, tax, deliveryFee, discount, total kernel.Money,
	createdAt time.Time,
	estimatedDeliveryAt time.Time,
	timestamps StatusTimestamps,
	version int,
) (*Order, error) {
	o := &Order{
		discount:      discount,
		total:         total,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setCustomerID(customerID),
		o.setRestaurantID(restaurantID),
		o.setLineItems(lineItems),
		o.setCreatedAt(createdAt),
		o.setEstimatedDeliveryAt(estimatedDeliveryAt),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	o.status = status
	o.cancellationReason = cancellationReason
	o.subtotal = subtotal
	o.tax = tax
	o.deliveryFee = deliveryFee
	o.confirmedAt = timestamps.ConfirmedAt
	o.preparingAt = timestamps.PreparingAt
	o.readyAt = timestamps.ReadyAt
	o.outForDeliveryAt = timestamps.OutForDeliveryAt
	o.deliveredAt = timestamps.DeliveredAt
	o.cancelledAt = timestamps.CancelledAt
	o.version = version

	return o, nil
}

// StatusTimestamps groups the per-status timestamps for RestoreOrder.
// A nil field means the order never reached that status.
type StatusTimestamps struct {
	ConfirmedAt      *time.Time
	PreparingAt      *time.Time
	ReadyAt          *time.Time
	OutForDeliveryAt *time.Time
	DeliveredAt      *time.Time
	CancelledAt      *time.Time
}

// Validate ensures the Order instance was properly constructed through
// NewOrder or RestoreOrder. This prevents bypassing validation by directly
// instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the human-readable order number.
func (o *Order) Number() kernel.OrderNumber {
	return o.number
}

// CustomerID returns the identifier of the customer who placed the order.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// RestaurantID returns the identifier of the restaurant the order was placed
// with.
func (o *Order) RestaurantID() kernel.UUID {
	return o.restaurantID
}

// LineItems returns a copy of the order's line-item snapshots in their
// original order.
func (o *Order) LineItems() []LineItem {
	items := make([]LineItem, len(o.lineItems))
	copy(items, o.lineItems)
	return items
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// CancellationReason returns the reason supplied when the order was
// cancelled, or nil.
func (o *Order) CancellationReason() *string {
	return o.cancellationReason
}

// Subtotal returns the sum of all line-item totals.
func (o *Order) Subtotal() kernel.Money {
	return o.subtotal
}

// Tax returns the tax amount computed at checkout.
func (o *Order) Tax() kernel.Money {
	return o.tax
}

// DeliveryFee returns the delivery fee frozen at checkout.
func (o *Order) DeliveryFee() kernel.Money {
	return o.deliveryFee
}

// Discount returns the currently applied discount amount.
func (o *Order) Discount() kernel.Money {
	return o.discount
}

// Total returns subtotal + tax + deliveryFee - discount.
func (o *Order) Total() kernel.Money {
	return o.total
}

// CreatedAt returns the UTC creation time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// EstimatedDeliveryAt returns the delivery estimate promised to the customer,
// stamped at checkout from the restaurant's configured delivery time.
func (o *Order) EstimatedDeliveryAt() time.Time {
	return o.estimatedDeliveryAt
}

// ConfirmedAt returns when the order was confirmed, or nil.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// PreparingAt returns when preparation started, or nil.
func (o *Order) PreparingAt() *time.Time { return o.preparingAt }

// ReadyAt returns when the order became ready for pickup, or nil.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// OutForDeliveryAt returns when the order left with a courier, or nil.
func (o *Order) OutForDeliveryAt() *time.Time { return o.outForDeliveryAt }

// DeliveredAt returns when the order was delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, or nil.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// Version returns the optimistic-concurrency version the aggregate was read
// at. The repository bumps it on every successful update.
func (o *Order) Version() int {
	return o.version
}

// TransitionTo moves the order to the target status.
//
// On a legal transition the status is updated and exactly the timestamp
// matching the target is stamped with now (normalized to UTC); previously
// set timestamps are untouched. When the target is Cancelled a non-empty
// reason is captured alongside the timestamp.
//
// On an illegal transition (target absent from the current status's allowed
// set, including any transition out of Delivered or Cancelled) an
// InvalidStatusTransitionError is returned and the order is left unmodified.
// Supplying a reason for a target other than Cancelled is rejected the same
// way, before the transition is attempted.
func (o *Order) TransitionTo(target Status, now time.Time, reason string) error {
	if reason != "" && target != Cancelled {
		return ErrCancellationReasonNotAllowed
	}

	if err := o.status.CanTransitionTo(target); err != nil {
		return err
	}

	stamp := now.UTC()
	switch target {
	case Confirmed:
		o.confirmedAt = &stamp
	case Preparing:
		o.preparingAt = &stamp
	case Ready:
		o.readyAt = &stamp
	case OutForDelivery:
		o.outForDeliveryAt = &stamp
	case Delivered:
		o.deliveredAt = &stamp
	case Cancelled:
		o.cancelledAt = &stamp
		if reason != "" {
			o.cancellationReason = &reason
		}
	case Unknown, Pending:
		// Unreachable: the transition table has no edge into these states.
	}

	o.status = target
	return nil
}

// Cancel is shorthand for TransitionTo(Cancelled, now, reason).
func (o *Order) Cancel(now time.Time, reason string) error {
	return o.TransitionTo(Cancelled, now, reason)
}

// ApplyDiscount sets the discount amount and re-derives the total so the
// total invariant keeps holding. The order must not be in a terminal status
// and the discount must not exceed subtotal + tax + deliveryFee.
func (o *Order) ApplyDiscount(discount kernel.Money) error {
	if o.status.IsTerminal() {
		return &InvalidStatusTransitionError{Current: o.status, Requested: o.status}
	}

	gross := o.subtotal.Add(o.tax).Add(o.deliveryFee)
	total, err := gross.Sub(discount)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"discount is invalid",
			fmt.Errorf("%s exceeds the order total %s", discount, gross),
		)
	}

	o.discount = discount
	o.total = total
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number kernel.OrderNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	o.restaurantID = restaurantID
	return nil
}

func (o *Order) setLineItems(lineItems []LineItem) error {
	if len(lineItems) == 0 {
		return ErrLineItemsAreRequired
	}
	items := make([]LineItem, len(lineItems))
	copy(items, lineItems)
	o.lineItems = items
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}

func (o *Order) setEstimatedDeliveryAt(estimatedDeliveryAt time.Time) error {
	if estimatedDeliveryAt.IsZero() {
		return errs.NewValueIsRequiredError("estimatedDeliveryAt")
	}
	o.estimatedDeliveryAt = estimatedDeliveryAt.UTC()
	return nil
}

// setAmounts validates the checkout figures and derives the total.
// Only used by NewOrder; RestoreOrder takes stored amounts as-is.
func (o *Order) setAmounts(subtotal, tax, deliveryFee kernel.Money) error {
	itemsTotal := kernel.ZeroMoney()
	for _, item := range o.lineItems {
		itemsTotal = itemsTotal.Add(item.Total())
	}
	if !subtotal.IsEqual(itemsTotal) {
		return errs.NewValueIsInvalidErrorWithCause(
			"subtotal is invalid",
			fmt.Errorf("%s does not match the line items total %s", subtotal, itemsTotal),
		)
	}

	o.subtotal = subtotal
	o.tax = tax
	o.deliveryFee = deliveryFee
	o.total = subtotal.Add(tax).Add(deliveryFee)
	return nil
}
