// Package services provides domain services that span more than one
// aggregate.
//
// The package includes:
//   - OrderDispatcher: binds delivery partners to orders and releases them on delivery
//   - AvailabilityResolver: decides whether a menu item is orderable at an instant
//   - BillGenerator: applies the GST and delivery fee policy to snapshotted lines
package services
