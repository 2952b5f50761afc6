// Package order provides the Order aggregate: the single artifact a call
// session commits. An order is created once per session, by the order
// committer, and is never mutated afterwards.
//
// Key business rules:
//   - Every order references exactly one session, and a session has at most one order
//   - Order and member numbers are 8-digit codes
//   - Quantity is at least 1
package order
