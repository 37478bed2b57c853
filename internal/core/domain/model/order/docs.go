// Package order provides the Order aggregate of the logistics engine.
//
// The package includes:
//   - Order: the aggregate root holding eligibility, financial and lifecycle state
//   - Status: the forward-only order pipeline plus the frozen HOLD/DELETED states
//   - EligibilityFields, MissingFields, DeriveStatus: the dispatch readiness rules
//   - Provenance: the last writer of each field (manual, import, external capture)
//
// Key business rules:
//   - Status only moves forward; HOLD and DELETED are entered by Hold/Delete and left by Reactivate
//   - A frozen order rejects every mutation
//   - INFORMATION_NEEDED advances to ASSIGN_VEHICLE on its own once the last missing field arrives
//   - An import never overwrites a manual edit, a capture never overwrites either
//   - Profit is freight cost minus the vehicle cost share, computed on COMPLETED or INVOICED
package order
