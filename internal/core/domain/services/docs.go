// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the food-delivery system.
// It implements workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - OrderFactory: The pricing calculator that turns a cart plus a
//     restaurant's fee configuration into a new Pending order
//
// Domain services stay free of I/O; collaborating data (fee configuration,
// day-scoped order counts, the current time) is passed in by the application
// layer.
package services
