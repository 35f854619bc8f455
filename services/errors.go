package services

import "errors"

// Failure kinds for the request pipeline. All of these surface to the client
// as HTTP 200 with {success:false, message}; only authentication failures
// (handled in middleware) use a distinct status code.

// ErrQuotaExceeded is returned when a free-tier identity has used up its
// generation allowance.
var ErrQuotaExceeded = errors.New("Limit Reached, Upgrade to Continue")

// ErrPremiumRequired is returned when a free-tier identity calls a
// premium-only capability.
var ErrPremiumRequired = errors.New("This feature is only available for premium users")

// ValidationError reports invalid client input, always detected before any
// external provider call. Its message is user-facing.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErr(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
