package busapi

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
	"testing"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyTransportError(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantType      ErrorType
		wantRetryable bool
	}{
		{
			name:          "Timeout error",
			err:           timeoutError{},
			wantType:      ErrTypeTimeout,
			wantRetryable: true,
		},
		{
			name:          "DNS error",
			err:           &net.DNSError{Name: "nosuchhost.invalid", Err: "no such host"},
			wantType:      ErrTypeDNS,
			wantRetryable: false,
		},
		{
			name:          "Connection refused",
			err:           &net.OpError{Op: "dial", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)},
			wantType:      ErrTypeConnectionRefused,
			wantRetryable: true,
		},
		{
			name:          "Generic error",
			err:           errors.New("something broke"),
			wantType:      ErrTypeNetwork,
			wantRetryable: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := classifyTransportError("/api/bus-data", tt.err)
			if apiErr.Type != tt.wantType {
				t.Errorf("type = %v, want %v", apiErr.Type, tt.wantType)
			}
			if apiErr.Retryable != tt.wantRetryable {
				t.Errorf("retryable = %v, want %v", apiErr.Retryable, tt.wantRetryable)
			}
			if apiErr.Endpoint != "/api/bus-data" {
				t.Errorf("endpoint = %q, want /api/bus-data", apiErr.Endpoint)
			}
		})
	}
}

func TestNewHTTPError(t *testing.T) {
	tests := []struct {
		name          string
		statusCode    int
		detail        string
		wantType      ErrorType
		wantRetryable bool
	}{
		{"404 is not found", 404, "No records found", ErrTypeNotFound, false},
		{"500 is retryable", 500, "", ErrTypeHTTP, true},
		{"503 is retryable", 503, "", ErrTypeHTTP, true},
		{"400 is not retryable", 400, "", ErrTypeHTTP, false},
		{"422 is not retryable", 422, "invalid hour", ErrTypeHTTP, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := newHTTPError("/api/find-arrival", tt.statusCode, tt.detail)
			if apiErr.Type != tt.wantType {
				t.Errorf("type = %v, want %v", apiErr.Type, tt.wantType)
			}
			if apiErr.Retryable != tt.wantRetryable {
				t.Errorf("retryable = %v, want %v", apiErr.Retryable, tt.wantRetryable)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("statusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
		})
	}
}

func TestNotFoundCarriesDetail(t *testing.T) {
	apiErr := newHTTPError("/api/find-arrival", 404, "No records found for route B46 at 3:00")
	if !IsNotFound(apiErr) {
		t.Fatal("expected IsNotFound to be true")
	}
	if apiErr.Message != "No records found for route B46 at 3:00" {
		t.Errorf("message = %q, want backend detail", apiErr.Message)
	}
}

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("inner failure")
	apiErr := &APIError{Type: ErrTypeNetwork, Message: "network error", Err: inner}

	if !errors.Is(apiErr, inner) {
		t.Error("errors.Is should find the wrapped error")
	}

	wrapped := fmt.Errorf("fetch failed: %w", apiErr)
	var target *APIError
	if !errors.As(wrapped, &target) {
		t.Error("errors.As should find APIError through wrapping")
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Retryable API error", &APIError{Type: ErrTypeTimeout, Retryable: true}, true},
		{"Non-retryable API error", &APIError{Type: ErrTypeValidation, Retryable: false}, false},
		{"Plain error", errors.New("plain"), false},
		{"Nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShortMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Timeout",
			err:  &APIError{Type: ErrTypeTimeout},
			want: "Backend not responding (timeout)",
		},
		{
			name: "Connection refused",
			err:  &APIError{Type: ErrTypeConnectionRefused},
			want: "Backend refused connection - is the API running?",
		},
		{
			name: "Not found keeps backend detail",
			err:  &APIError{Type: ErrTypeNotFound, Message: "No records found"},
			want: "No records found",
		},
		{
			name: "Plain error passes through",
			err:  errors.New("boom"),
			want: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortMessage(tt.err); got != tt.want {
				t.Errorf("ShortMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTroubleshootingHint(t *testing.T) {
	err := &APIError{Type: ErrTypeConnectionRefused, Message: "backend refused connection"}
	hint := TroubleshootingHint(err)
	if !strings.Contains(hint, "Troubleshooting") {
		t.Errorf("hint should include troubleshooting section, got %q", hint)
	}
}

func TestErrorTypeString(t *testing.T) {
	if ErrTypeTimeout.String() != "Timeout" {
		t.Errorf("ErrTypeTimeout.String() = %q", ErrTypeTimeout.String())
	}
	if got := ErrorType(99).String(); got != "ErrorType(99)" {
		t.Errorf("unknown type String() = %q", got)
	}
}
