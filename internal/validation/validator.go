// =============================================================================
// Packiyo PO Converter - Validation Engine
// =============================================================================
//
// This module validates the two inputs a conversion depends on:
//   1. Schema: the export's column set must equal the Shopify schema exactly.
//      Missing and unexpected columns are both reported.
//   2. Request: the purchase order metadata supplied by the caller. Every
//      violated constraint is reported together so the user can fix them in
//      one pass.
//
// ERROR HANDLING:
//   - Errors are collected, not returned on first failure
//   - Typed errors carry the offending values for display
//   - Sentinel errors allow errors.Is checks by callers
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/highlinecommerce/packiyo-po-converter/internal/types"
)

// Sentinel errors matched by the typed errors below.
var (
	ErrSchemaMismatch = errors.New("CSV headers do not match the expected Shopify inventory format")
	ErrMissingFields  = errors.New("purchase order details are incomplete")
)

// =============================================================================
// SCHEMA VALIDATION
// =============================================================================

// SchemaError reports a column set that differs from the expected schema.
type SchemaError struct {
	// Missing lists required columns absent from the file, in schema order.
	Missing []string

	// Extra lists file columns that are not part of the schema, in file order.
	Extra []string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var builder strings.Builder
	builder.WriteString(ErrSchemaMismatch.Error())
	if len(e.Missing) > 0 {
		builder.WriteString("; missing columns: ")
		builder.WriteString(strings.Join(e.Missing, ", "))
	}
	if len(e.Extra) > 0 {
		builder.WriteString("; unexpected columns: ")
		builder.WriteString(strings.Join(e.Extra, ", "))
	}
	return builder.String()
}

// Is lets errors.Is(err, ErrSchemaMismatch) match.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// ValidateHeaders compares the file's headers with types.ExpectedHeaders.
//
// PARAMETERS:
//   - headers: The column names read from the file, in file order.
//
// RETURNS:
//   - nil when the sets are equal (order is ignored).
//   - A *SchemaError listing missing and unexpected columns otherwise.
func ValidateHeaders(headers []string) error {
	expected := types.ExpectedHeaders

	actual := make(map[string]bool, len(headers))
	for _, h := range headers {
		actual[h] = true
	}
	required := make(map[string]bool, len(expected))
	for _, h := range expected {
		required[h] = true
	}

	schemaErr := &SchemaError{}
	for _, h := range expected {
		if !actual[h] {
			schemaErr.Missing = append(schemaErr.Missing, h)
		}
	}
	for _, h := range headers {
		if !required[h] {
			schemaErr.Extra = append(schemaErr.Extra, h)
		}
	}

	if len(schemaErr.Missing) == 0 && len(schemaErr.Extra) == 0 {
		return nil
	}
	return schemaErr
}

// =============================================================================
// REQUEST VALIDATION
// =============================================================================

// ValidationError is a single violated constraint on the request.
type ValidationError struct {
	// Field is the request field that failed.
	Field string

	// Rule is the constraint that was violated.
	Rule string

	// Message is shown to the user as-is.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// RequestError collects every violation found in a PurchaseOrderRequest.
type RequestError struct {
	Violations []*ValidationError
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	messages := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		messages[i] = v.Message
	}
	return fmt.Sprintf("%s: %s", ErrMissingFields.Error(), strings.Join(messages, " "))
}

// Is lets errors.Is(err, ErrMissingFields) match.
func (e *RequestError) Is(target error) bool {
	return target == ErrMissingFields
}

// ValidateRequest checks the caller-supplied metadata.
//
// RULES:
//   - POName must be non-empty after trimming
//   - Customer must be non-empty after trimming
//   - At least one location must be selected
//   - Warehouse must be one of types.Warehouses
//
// Whether the selected locations exist in the file is deliberately not
// checked; unknown locations match no rows.
//
// RETURNS:
//   - nil if the request is complete.
//   - A *RequestError holding all violations otherwise.
func ValidateRequest(req types.PurchaseOrderRequest) error {
	var violations []*ValidationError

	if strings.TrimSpace(req.POName) == "" {
		violations = append(violations, &ValidationError{
			Field:   "po_name",
			Rule:    "required",
			Message: "Purchase Order Name is required.",
		})
	}
	if strings.TrimSpace(req.Customer) == "" {
		violations = append(violations, &ValidationError{
			Field:   "customer",
			Rule:    "required",
			Message: "Customer is required.",
		})
	}
	if len(req.Locations) == 0 {
		violations = append(violations, &ValidationError{
			Field:   "locations",
			Rule:    "required",
			Message: "Select at least one Location to Pull From.",
		})
	}
	if !types.IsWarehouse(req.Warehouse) {
		violations = append(violations, &ValidationError{
			Field:   "warehouse",
			Rule:    "one_of",
			Message: fmt.Sprintf("Warehouse must be one of: %s.", strings.Join(types.Warehouses, ", ")),
		})
	}

	if len(violations) == 0 {
		return nil
	}
	return &RequestError{Violations: violations}
}

// =============================================================================
// ERROR FORMATTING
// =============================================================================

// FormatErrors renders a validation failure for the terminal, one issue per
// line. Errors that are neither *SchemaError nor *RequestError are returned
// verbatim.
func FormatErrors(err error) string {
	var builder strings.Builder

	var schemaErr *SchemaError
	var requestErr *RequestError
	switch {
	case errors.As(err, &schemaErr):
		builder.WriteString(ErrSchemaMismatch.Error())
		builder.WriteString("\n")
		if len(schemaErr.Missing) > 0 {
			builder.WriteString(fmt.Sprintf("  Missing columns: %s\n", strings.Join(schemaErr.Missing, ", ")))
		}
		if len(schemaErr.Extra) > 0 {
			builder.WriteString(fmt.Sprintf("  Unexpected columns: %s\n", strings.Join(schemaErr.Extra, ", ")))
		}
	case errors.As(err, &requestErr):
		for _, v := range requestErr.Violations {
			builder.WriteString(v.Message)
			builder.WriteString("\n")
		}
	default:
		builder.WriteString(err.Error())
		builder.WriteString("\n")
	}

	return builder.String()
}
