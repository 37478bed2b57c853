// Package vehicle provides the Vehicle aggregate: a truck and driver assignment
// that carries one or more orders through the facility.
//
// A vehicle moves forward through its own pipeline:
//
//	ASSIGNED -> ARRIVED -> GATE_IN -> LOADING_START -> LOADING_COMPLETE -> TRIP_INVOICED
//	  -> GATE_OUT -> IN_JOURNEY -> COMPLETED -> INVOICED -> CANCELLED
//
// Each status change stamps the matching milestone once. The vehicle number never
// changes after creation, and all orders carried by one vehicle share its trip reference.
package vehicle
