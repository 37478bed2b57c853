// Package services provides domain services that coordinate business rules
// spanning several aggregates of the logistics engine.
//
// The package includes:
//   - StatusSynchronizer: propagates a vehicle status to the orders it carries
//   - AllocationLedger: matches bank transaction funds to payment requests
//   - VehicleCompletionPolicy: completes a vehicle once its trip is paid and delivered
//
// Services mutate the aggregates they are given and never touch storage; command
// handlers load the aggregates, call the service and persist the result inside
// one unit of work.
package services
