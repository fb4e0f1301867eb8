// Package services provides the domain services of the fulfillment core. They
// plan changes to an order snapshot and return them as requests; they never
// commit anything themselves.
//
// The package includes:
//   - GracePeriodCoordinator: wraps status changes in a reversible, time-bounded window
//   - EscalationController: gates the vendor-unavailable track (warehouse
//     fulfillment, revert to vendor, reassignment)
//
// Both services are pure functions of the order snapshot and an explicit now.
package services
