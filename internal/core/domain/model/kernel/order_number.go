package kernel

import (
	"fmt"
	"regexp"

	"fooddelivery/internal/pkg/errs"
)

// maxDaySequence is the largest sequence number that fits the six-digit
// order-number format.
const maxDaySequence = 999999

// ErrOrderNumberIsNotConstructed indicates that an OrderNumber was not created
// through GenerateOrderNumber or OrderNumberFromString.
var ErrOrderNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"OrderNumber must be created via GenerateOrderNumber or OrderNumberFromString",
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{4}-\d{6}$`)

// OrderNumber is a value object for the human-readable order identifier in the
// format ORD-<year>-<6-digit sequence>, e.g. "ORD-2025-000042". The sequence
// is scoped to one UTC calendar day and resets to 000001 at the day boundary.
//
// OrderNumber does not guarantee uniqueness by itself: the collaborator that
// supplies the day sequence must serialize allocation (see
// ports.OrderRepository.CountCreatedBetween).
type OrderNumber struct {
	value string
}

// GenerateOrderNumber builds an OrderNumber from the current year and the
// day-scoped sequence. The sequence must be between 1 and 999999.
func GenerateOrderNumber(year int, daySequence int) (OrderNumber, error) {
	if daySequence < 1 || daySequence > maxDaySequence {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("daySequence", daySequence, 1, maxDaySequence)
	}
	if year < 1000 || year > 9999 {
		return OrderNumber{}, errs.NewValueIsOutOfRangeError("year", year, 1000, 9999)
	}

	return OrderNumber{value: fmt.Sprintf("ORD-%d-%06d", year, daySequence)}, nil
}

// OrderNumberFromString parses an OrderNumber from its string representation.
// Used when reconstructing orders from persistence.
func OrderNumberFromString(s string) (OrderNumber, error) {
	if !orderNumberPattern.MatchString(s) {
		return OrderNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"order number is invalid",
			fmt.Errorf("%q does not match ORD-<year>-<sequence>", s),
		)
	}
	return OrderNumber{value: s}, nil
}

// String returns the order number, e.g. "ORD-2025-000001".
func (n OrderNumber) String() string {
	return n.value
}

// IsEqual compares two order numbers for equality.
func (n OrderNumber) IsEqual(other OrderNumber) bool {
	return n.value == other.value
}

// Validate checks that the OrderNumber was created through a constructor.
// The zero value is invalid.
func (n OrderNumber) Validate() error {
	if n.value == "" {
		return ErrOrderNumberIsNotConstructed
	}
	return nil
}
