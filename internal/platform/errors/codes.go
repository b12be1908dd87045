// Package errors provides the structured error vocabulary shared across the
// service.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// CodeInvalidCharacter marks a character record that failed boundary
	// validation (unreadable body, malformed JSON, schema violation).
	CodeInvalidCharacter Code = "CHARACTER_INVALID"

	// CodeTemplateMissing marks an absent sheet template. The service is
	// misconfigured and no retry will succeed until it is fixed.
	CodeTemplateMissing Code = "SHEET_TEMPLATE_MISSING"

	// CodeRenderFailed marks an unexpected failure while assembling or
	// serializing a sheet. Callers may retry.
	CodeRenderFailed Code = "SHEET_RENDER_FAILED"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeInvalidCharacter:
		return codes.InvalidArgument

	// Unavailable - transient failures worth retrying
	case CodeRenderFailed:
		return codes.Unavailable

	// Internal - misconfiguration, not recoverable by retry
	case CodeTemplateMissing:
		return codes.Internal

	default:
		return codes.Internal
	}
}
