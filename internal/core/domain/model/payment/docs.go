// Package payment provides the ledger model: payment requests raised against a
// vehicle, the bank transactions that fund them and the allocations that tie the two.
//
// Balance invariants:
//   - Σ allocations of a request never exceed its requested amount once completed
//   - Σ allocations drawn from a bank transaction never exceed its total paid amount
//   - a request moves from PENDING to COMPLETED exactly once and is never reopened
//
// Allocations are only created by the allocation ledger in the services package.
package payment
