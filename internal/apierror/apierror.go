// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Severidad distinguishes recoverable input problems ("warning") from
// rejections ("danger") so the frontend can pick the right flash style.
type APIError struct {
	Detail    string `json:"detail"`
	Severidad string `json:"severidad,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg, Severidad: "danger"}
}

func Warning(msg string) *APIError {
	return &APIError{Detail: msg, Severidad: "warning"}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
