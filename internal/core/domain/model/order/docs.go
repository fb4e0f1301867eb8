// Package order provides the order aggregate and the fulfillment lifecycle
// rules shared by every component of the service.
//
// The package includes:
//   - Status: the closed, ordered set of canonical lifecycle statuses and the
//     normalizer that maps producer vocabulary onto it
//   - NextStatus / WorkflowCompleted: the transition planner
//   - GracePeriod: the reversible window opened by every forward transition
//   - MutationRequest and the escalation requests: immutable change records
//     handed to the order-data service
//   - Order: the aggregate snapshot and the appliers the order-data service
//     uses to commit those records
//
// Lifecycle:
//
//	awaiting ──> accepted ──> dispatched ──> delivered ──> fully_paid
//	                                             │        (partial only)
//	                                             └── terminal for full
package order
