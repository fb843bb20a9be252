// Package order provides domain entities and business logic for the order
// lifecycle in the food-delivery system. It implements the Order aggregate
// root with immutable line-item snapshots, frozen checkout pricing and
// validated status transitions.
//
// The package includes:
//   - Order: The aggregate root holding line items, money figures, status and per-status timestamps
//   - LineItem: An immutable snapshot of one ordered menu item
//   - Status: A state machine with one canonical transition table
//
// Key business rules:
//   - Orders are non-empty and their line items never change after creation
//   - The lifecycle is Pending -> Confirmed -> Preparing -> Ready -> OutForDelivery -> Delivered,
//     with Cancelled reachable from every non-terminal status
//   - Delivered and Cancelled are terminal; no transition leaves them
//   - Each legal transition stamps the timestamp matching the new status and
//     never clears earlier timestamps
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
