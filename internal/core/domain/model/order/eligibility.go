package order

import (
	"math"
	"strings"
)

// Field names an order attribute that can be written by an external source.
type Field int

const (
	FieldUnknown Field = iota
	FieldSoNumber
	FieldCaseCount
	FieldCaseLot
	FieldDestinationTown
	FieldPinCode
	FieldTruckSize
	FieldTruckType
	FieldTripReference
	FieldFreightCost
)

func getFieldStrings() map[Field]string {
	return map[Field]string{
		FieldSoNumber:        "soNumber",
		FieldCaseCount:       "caseCount",
		FieldCaseLot:         "caseLot",
		FieldDestinationTown: "destinationTown",
		FieldPinCode:         "pinCode",
		FieldTruckSize:       "truckSize",
		FieldTruckType:       "truckType",
		FieldTripReference:   "tripReference",
		FieldFreightCost:     "freightCost",
	}
}

func (f Field) String() string {
	if s, ok := getFieldStrings()[f]; ok {
		return s
	}
	return "unknown"
}

// ParseField resolves the camelCase field name; unknown names return FieldUnknown.
func ParseField(s string) Field {
	for f, name := range getFieldStrings() {
		if name == s {
			return f
		}
	}
	return FieldUnknown
}

// requiredFields must all be present before an order is ready for dispatch.
var requiredFields = []Field{
	FieldSoNumber,
	FieldCaseCount,
	FieldCaseLot,
	FieldDestinationTown,
	FieldPinCode,
	FieldTruckSize,
	FieldTruckType,
}

// RequiredFields returns the eligibility fields in evaluation order.
func RequiredFields() []Field {
	return append([]Field(nil), requiredFields...)
}

// EligibilityFields is the data an order needs before a vehicle can be assigned.
type EligibilityFields struct {
	SoNumber        string
	CaseCount       float64
	CaseLot         string
	DestinationTown string
	PinCode         string
	TruckSize       float64
	TruckType       string
}

// MissingFields lists the required fields that are absent. A number is present
// when it is finite and greater than zero; a string when it is not blank.
func MissingFields(f EligibilityFields) []Field {
	missing := make([]Field, 0)
	for _, field := range requiredFields {
		if !f.has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// DeriveStatus returns AssignVehicle when nothing is missing and InformationNeeded otherwise.
func DeriveStatus(f EligibilityFields) Status {
	if len(MissingFields(f)) == 0 {
		return AssignVehicle
	}
	return InformationNeeded
}

func (f EligibilityFields) has(field Field) bool {
	//nolint:exhaustive // only eligibility fields are evaluated
	switch field {
	case FieldSoNumber:
		return presentString(f.SoNumber)
	case FieldCaseCount:
		return presentNumber(f.CaseCount)
	case FieldCaseLot:
		return presentString(f.CaseLot)
	case FieldDestinationTown:
		return presentString(f.DestinationTown)
	case FieldPinCode:
		return presentString(f.PinCode)
	case FieldTruckSize:
		return presentNumber(f.TruckSize)
	case FieldTruckType:
		return presentString(f.TruckType)
	default:
		return false
	}
}

func presentString(s string) bool {
	return strings.TrimSpace(s) != ""
}

func presentNumber(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0) && n > 0
}

func fieldNames(fields []Field) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.String())
	}
	return names
}
