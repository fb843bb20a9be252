package order

import (
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// ErrLineItemNameIsRequired is returned when a line item is created without a
// menu-item name.
var ErrLineItemNameIsRequired = errs.NewValueIsRequiredError("line item name")

// LineItem is an immutable snapshot of one menu item inside an order.
// Name and unit price are captured at order time so later menu edits never
// change order history. Line items are created at order creation and never
// mutated afterward.
type LineItem struct {
	menuItemID kernel.UUID
	name       string
	unitPrice  kernel.Money
	quantity   int
}

// NewLineItem creates a line-item snapshot with validation.
// The menu-item id must be a valid UUID, the name non-empty and the quantity
// at least 1. The unit price may be zero (free item) but never negative,
// which kernel.Money already guarantees.
func NewLineItem(menuItemID kernel.UUID, name string, unitPrice kernel.Money, quantity int) (LineItem, error) {
	if err := menuItemID.Validate(); err != nil {
		return LineItem{}, err
	}
	if name == "" {
		return LineItem{}, ErrLineItemNameIsRequired
	}
	if quantity < 1 {
		return LineItem{}, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}

	return LineItem{
		menuItemID: menuItemID,
		name:       name,
		unitPrice:  unitPrice,
		quantity:   quantity,
	}, nil
}

// MenuItemID returns the identifier of the menu item this line refers to.
func (li LineItem) MenuItemID() kernel.UUID {
	return li.menuItemID
}

// Name returns the menu-item name captured at order time.
func (li LineItem) Name() string {
	return li.name
}

// UnitPrice returns the per-unit price captured at order time.
func (li LineItem) UnitPrice() kernel.Money {
	return li.unitPrice
}

// Quantity returns the ordered quantity, always >= 1.
func (li LineItem) Quantity() int {
	return li.quantity
}

// Total returns unit price multiplied by quantity, with full precision.
func (li LineItem) Total() kernel.Money {
	return li.unitPrice.MulInt(li.quantity)
}
