// Package order provides the Order aggregate root for the dispatch service.
//
// An order is created Pending with a routed distance and a computed price.
// The offer dispatcher drives it to Accepted (a courier took it) or Exhausted
// (no candidates left); the surrounding system then drives pickup and delivery
// progress. Exhausted orders are an operator concern: they can be re-dispatched
// or cancelled, never silently retried by the core.
//
// Key business rules:
//   - at most one courier assignment at any time
//   - status transitions follow the Status state machine and are monotonic
//   - price components are validated to sum exactly
package order
