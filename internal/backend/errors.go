package backend

import (
	"errors"
	"fmt"
)

// NetworkError reports a request that could not complete or produced an
// unreadable response.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (networkError *NetworkError) Error() string {
	return fmt.Sprintf("backend request %s failed: %v", networkError.Endpoint, networkError.Err)
}

func (networkError *NetworkError) Unwrap() error {
	return networkError.Err
}

// BackendError reports a parsed response carrying the backend's error field.
// Message holds the backend text verbatim.
type BackendError struct {
	Endpoint string
	Message  string
}

func (backendError *BackendError) Error() string {
	return fmt.Sprintf("backend %s reported: %s", backendError.Endpoint, backendError.Message)
}

// IsFetchError reports whether err belongs to the fetch error taxonomy.
func IsFetchError(err error) bool {
	var networkError *NetworkError
	var backendError *BackendError
	return errors.As(err, &networkError) || errors.As(err, &backendError)
}

// UserMessage returns the text shown to dashboard users for a failed fetch.
func UserMessage(err error) string {
	var backendError *BackendError
	if errors.As(err, &backendError) {
		return backendError.Message
	}
	var networkError *NetworkError
	if errors.As(err, &networkError) {
		return "Backend unreachable"
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
