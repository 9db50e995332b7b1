// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}

// SubscriptionError is returned by the subscription gate. Msg mirrors the
// value of GET /billings/check so the client can redirect without a second call.
type SubscriptionError struct {
	Detail string `json:"detail"`
	Msg    string `json:"msg"`
}

func NewSubscription(msg string) *SubscriptionError {
	return &SubscriptionError{Detail: "Suscripcion vencida", Msg: msg}
}
