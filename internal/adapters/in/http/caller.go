package http

import (
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	HeaderTenantID = "X-Tenant-ID"
	HeaderRole     = "X-Role"
)

// callerFrom reads the tenant and role set by the gateway in front of the service.
func callerFrom(ctx echo.Context) (kernel.Caller, error) {
	header := ctx.Request().Header

	raw := header.Get(HeaderTenantID)
	if raw == "" {
		return kernel.Caller{}, errs.NewValueIsRequiredError(HeaderTenantID)
	}
	tenantID, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.Caller{}, errs.NewValueIsInvalidErrorWithCause(HeaderTenantID, err)
	}

	role, err := kernel.ParseRole(header.Get(HeaderRole))
	if err != nil {
		return kernel.Caller{}, err
	}

	return kernel.NewCaller(tenantID, role)
}

// pathID binds a uuid path parameter the way generated OpenAPI servers do.
func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func optionalID(name string, raw *string) (*kernel.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return &id, nil
}

func requiredIDs(name string, raw []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := kernel.UUIDFromString(r)
		if err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
