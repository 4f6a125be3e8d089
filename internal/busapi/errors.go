package busapi

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a network-level error
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates a request timeout
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates the backend refused the connection
	ErrTypeConnectionRefused
	// ErrTypeDNS indicates a hostname resolution failure
	ErrTypeDNS
	// ErrTypeHTTP indicates a non-success status code
	ErrTypeHTTP
	// ErrTypeNotFound indicates the backend had no data for the query (404)
	ErrTypeNotFound
	// ErrTypeParse indicates a malformed JSON response
	ErrTypeParse
	// ErrTypeValidation indicates invalid query parameters, caught before
	// any request is made
	ErrTypeValidation
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeDNS:
		return "DNS Error"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeParse:
		return "Parse Error"
	case ErrTypeValidation:
		return "Validation Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError is an error from the delay-statistics API or the transport
// underneath it.
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Endpoint   string    // API path the request targeted
	Err        error     // Underlying error (if any)
	Retryable  bool      // Whether the error is retryable
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// classifyTransportError turns a transport failure into a typed APIError.
func classifyTransportError(endpoint string, err error) *APIError {
	if err == nil {
		return nil
	}

	if os.IsTimeout(err) {
		return &APIError{
			Type:      ErrTypeTimeout,
			Message:   "request timed out",
			Endpoint:  endpoint,
			Err:       err,
			Retryable: true,
		}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &APIError{
			Type:      ErrTypeDNS,
			Message:   fmt.Sprintf("cannot resolve %s", dnsErr.Name),
			Endpoint:  endpoint,
			Err:       err,
			Retryable: false,
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{
			Type:      ErrTypeConnectionRefused,
			Message:   "backend refused connection",
			Endpoint:  endpoint,
			Err:       err,
			Retryable: true,
		}
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return &APIError{
				Type:      ErrTypeTimeout,
				Message:   "request timed out",
				Endpoint:  endpoint,
				Err:       err,
				Retryable: true,
			}
		}
		return classifyTransportError(endpoint, urlErr.Err)
	}

	return &APIError{
		Type:      ErrTypeNetwork,
		Message:   "network error",
		Endpoint:  endpoint,
		Err:       err,
		Retryable: true,
	}
}

// newHTTPError builds an APIError for a non-success status code. 404 is
// classified separately because for query endpoints it carries meaning
// ("no records"), and server errors are retryable.
func newHTTPError(endpoint string, statusCode int, detail string) *APIError {
	if statusCode == 404 {
		msg := "no data for query"
		if detail != "" {
			msg = detail
		}
		return &APIError{
			Type:       ErrTypeNotFound,
			Message:    msg,
			StatusCode: statusCode,
			Endpoint:   endpoint,
			Retryable:  false,
		}
	}
	return &APIError{
		Type:       ErrTypeHTTP,
		Message:    fmt.Sprintf("unexpected status %d: %s", statusCode, detail),
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Retryable:  statusCode >= 500,
	}
}

// newParseError builds an APIError for a malformed response body.
func newParseError(endpoint string, err error) *APIError {
	return &APIError{
		Type:      ErrTypeParse,
		Message:   "failed to parse response",
		Endpoint:  endpoint,
		Err:       err,
		Retryable: false,
	}
}

// newValidationError builds an APIError for bad query parameters.
func newValidationError(message string) *APIError {
	return &APIError{
		Type:      ErrTypeValidation,
		Message:   message,
		Retryable: false,
	}
}

// IsNotFound checks whether an error means the backend had no matching data
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrTypeNotFound
}

// IsValidationError checks whether an error is a parameter validation error
func IsValidationError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Type == ErrTypeValidation
}

// IsRetryable checks if an error should be retried
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Retryable
	}
	// Unknown errors are not retryable by default
	return false
}

// ShortMessage returns a concise, user-friendly message for display in
// status lines and result boxes.
func ShortMessage(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Backend not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Backend refused connection - is the API running?"
	case ErrTypeDNS:
		return "Cannot resolve backend hostname"
	case ErrTypeNetwork:
		return "Network error - check connection"
	case ErrTypeNotFound:
		return apiErr.Message
	case ErrTypeHTTP:
		return fmt.Sprintf("Backend error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Unexpected response from backend"
	case ErrTypeValidation:
		return apiErr.Message
	default:
		return apiErr.Message
	}
}

// TroubleshootingHint returns user-facing troubleshooting advice for an
// error, shown by one-shot commands on failure.
func TroubleshootingHint(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "An unexpected error occurred. Please try again."
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return strings.Join([]string{
			"The backend did not respond in time.",
			"Troubleshooting:",
			"  • Check that the API server is running",
			"  • Verify the configured API URL (busboard --api ...)",
			"  • Try increasing --timeout",
		}, "\n")

	case ErrTypeConnectionRefused:
		return strings.Join([]string{
			"Nothing is listening at the configured API address.",
			"Troubleshooting:",
			"  • Start the backend, or busboard-mock for local development",
			"  • Check the port in the API URL",
		}, "\n")

	case ErrTypeDNS:
		return strings.Join([]string{
			"Could not resolve the backend hostname.",
			"Troubleshooting:",
			"  • Check the API URL for typos",
			"  • Try an IP address instead of a hostname",
		}, "\n")

	case ErrTypeNotFound:
		return "The backend has no records matching the query. Try a different route, stop, or time."

	case ErrTypeHTTP:
		if apiErr.StatusCode >= 500 {
			return "The backend reported an internal error. Check the server logs; its dataset may have failed to load."
		}
		return fmt.Sprintf("The backend rejected the request (HTTP %d). Check the query parameters.", apiErr.StatusCode)

	case ErrTypeParse:
		return "The backend response could not be parsed. The configured URL may not point at a bus delay API."

	case ErrTypeValidation:
		return apiErr.Message

	default:
		return "Network communication failed. Check your connection and the configured API URL."
	}
}
