// Package kernel provides the primitives shared by every aggregate of the
// logistics engine: identifiers, the calling identity and money helpers.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Caller and Role: the tenant and role every command runs under
//   - amount helpers over github.com/shopspring/decimal
package kernel
