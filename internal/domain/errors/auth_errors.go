package errors

import "fmt"

// AuthError represents a failure talking to the auth backend
type AuthError struct {
	Type    string
	Message string
	Status  int
	Cause   error
}

func (e *AuthError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (status: %d) - %v", e.Type, e.Message, e.Status, e.Cause)
	}
	return fmt.Sprintf("%s: %s (status: %d)", e.Type, e.Message, e.Status)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

// Auth error types
const (
	ErrTypeSupabaseConnectionFailed = "SUPABASE_CONNECTION_FAILED"
	ErrTypeSupabaseUnexpectedStatus = "SUPABASE_UNEXPECTED_STATUS"
	ErrTypeSupabaseInvalidResponse  = "SUPABASE_INVALID_RESPONSE"
)

// NewSupabaseConnectionError creates a new Supabase connection error
func NewSupabaseConnectionError(cause error) *AuthError {
	return &AuthError{
		Type:    ErrTypeSupabaseConnectionFailed,
		Message: "failed to connect to Supabase auth",
		Cause:   cause,
	}
}

// NewSupabaseStatusError creates an error for an unexpected auth response status
func NewSupabaseStatusError(status int, body string) *AuthError {
	return &AuthError{
		Type:    ErrTypeSupabaseUnexpectedStatus,
		Message: fmt.Sprintf("unexpected response from Supabase auth: %s", body),
		Status:  status,
	}
}

// NewSupabaseInvalidResponseError creates an error for an undecodable auth response
func NewSupabaseInvalidResponseError(status int, cause error) *AuthError {
	return &AuthError{
		Type:    ErrTypeSupabaseInvalidResponse,
		Message: "failed to decode Supabase auth response",
		Status:  status,
		Cause:   cause,
	}
}
