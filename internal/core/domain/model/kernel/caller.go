package kernel

import (
	"errors"
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

// ErrCallerIsNotConstructed is returned when a Caller literal bypasses NewCaller.
var ErrCallerIsNotConstructed = errors.New("Caller must be created via NewCaller constructor")

// Role gates which fields of an incoming payload a caller may mutate.
type Role int

const (
	RoleUnknown Role = iota
	// RoleAdmin may change every field.
	RoleAdmin
	// RoleOperator is the back office; may change every field.
	RoleOperator
	// RoleSecurity drives the gate. It may not touch financial fields.
	RoleSecurity
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleAdmin:    "ADMIN",
		RoleOperator: "OPERATOR",
		RoleSecurity: "SECURITY",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "UNKNOWN"
}

// ParseRole accepts the upper or lower case role name.
func ParseRole(s string) (Role, error) {
	for role, name := range getRoleStrings() {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a known role", s))
}

// Caller is the identity every operation runs under. Authentication happens
// outside the engine; the caller arrives already resolved.
type Caller struct {
	tenantID UUID
	role     Role
	guard    guard.ConstructorGuard
}

func NewCaller(tenantID UUID, role Role) (Caller, error) {
	if err := tenantID.Validate(); err != nil {
		return Caller{}, err
	}
	if _, ok := getRoleStrings()[role]; !ok {
		return Caller{}, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a known role", role))
	}
	return Caller{tenantID: tenantID, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (c Caller) Validate() error {
	return c.guard.Validate(ErrCallerIsNotConstructed)
}

func (c Caller) TenantID() UUID {
	return c.tenantID
}

func (c Caller) Role() Role {
	return c.role
}

// CanSetFinancials reports whether payload fields such as freight cost,
// vehicle amount and expense are honoured for this caller.
func (c Caller) CanSetFinancials() bool {
	return c.role == RoleAdmin || c.role == RoleOperator
}
