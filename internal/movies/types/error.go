package types

import (
	"errors"
	"fmt"
)

var (
	// Input errors, returned before any network call is made
	ErrAPIKeyRequired = errors.New("API key is required")
	ErrEmptyQuery     = errors.New("query cannot be empty")

	// Provider errors
	ErrInvalidAPIKey = errors.New("invalid API key")

	// Configuration errors
	ErrInvalidAPIHost = errors.New("invalid API host")
)

// ProviderError wraps a fault reported by or while talking to the provider.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s (%v)", e.Provider, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Provider, e.Code, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
