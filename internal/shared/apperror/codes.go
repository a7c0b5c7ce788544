package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"
	CodeOutOfOrder   = "OUT_OF_ORDER"

	// Server errors (5xx). The directory codes stay separate from
	// INTERNAL_ERROR so operators can tell "org chart incomplete" apart
	// from ordinary failures.
	CodeInternalError        = "INTERNAL_ERROR"
	CodeServiceUnavailable   = "SERVICE_UNAVAILABLE"
	CodeNoApproverConfigured = "NO_APPROVER_CONFIGURED"
	CodeUnknownRole          = "UNKNOWN_ROLE"
)
