// Package kernel provides the shared primitives of the fulfillment domain.
//
// The package includes:
//   - UUID: the identifier value object for orders, vendors and mutation requests
//
// Primitives are immutable and safe for concurrent use.
package kernel
