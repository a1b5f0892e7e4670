package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest matches every ValidationError through errors.Is.
	ErrInvalidRequest = errors.New("exchange: invalid request")
	// ErrMissingCredentials indicates the API key or secret is absent.
	ErrMissingCredentials = errors.New("exchange: api key and secret are required")
)

// ConfigError reports an unrecoverable startup condition such as missing
// credentials. It is raised at construction time and never retried.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("exchange config: %v", e.Err)
	}
	return fmt.Sprintf("exchange config: %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TransportError wraps a failure that happened before any response was
// received (DNS, refused connection, timeout, cancelled context).
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("exchange transport: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError carries a non-200 response. Body is the raw response text exactly
// as the exchange sent it.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchange api: http status %d: %s", e.StatusCode, e.Body)
}

// ExchangeCode extracts the {"code":..,"msg":..} payload Binance attaches to
// most error responses. ok is false when the body does not have that shape.
func (e *APIError) ExchangeCode() (code int, msg string, ok bool) {
	var payload struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err != nil {
		return 0, "", false
	}
	if payload.Code == 0 && payload.Msg == "" {
		return 0, "", false
	}
	return payload.Code, payload.Msg, true
}

// ValidationError reports caller-supplied arguments that fail a precondition.
// It is always returned before any network call is attempted.
type ValidationError struct {
	Field   string
	Message string
	Value   interface{}
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("exchange validation: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("exchange validation: %s: %s (value: %v)", e.Field, e.Message, e.Value)
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}
