package wire

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies every failure that can cross the relay.
type ErrorKind int

const (
	// KindMethodNotAllowed is a forwarder call with a verb other than POST.
	KindMethodNotAllowed ErrorKind = iota + 1
	// KindVendorRequestFailed is a failed completion API call.
	KindVendorRequestFailed
	// KindMalformedStreamFrame is a data line that is not valid JSON.
	KindMalformedStreamFrame
	// KindNetworkFailure is a client fetch that failed before streaming began.
	KindNetworkFailure
	// KindStreamFailed is an error frame received mid-stream.
	KindStreamFailed
)

// Fixed user-facing messages.
const (
	MethodNotAllowedMessage = "Method not allowed"
	VendorFallbackMessage   = "Error processing your request"
	NetworkFailureMessage   = "Something went wrong"
)

func (k ErrorKind) String() string {
	switch k {
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindVendorRequestFailed:
		return "vendor_request_failed"
	case KindMalformedStreamFrame:
		return "malformed_stream_frame"
	case KindNetworkFailure:
		return "network_failure"
	case KindStreamFailed:
		return "stream_failed"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// Error is the structured failure passed between layers.
type Error struct {
	Kind ErrorKind
	// Status is the HTTP status to report, when the kind has one.
	Status int
	// Message is what the caller should see.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// MethodNotAllowed builds the fixed 405 error.
func MethodNotAllowed() *Error {
	return &Error{Kind: KindMethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: MethodNotAllowedMessage}
}

// VendorRequestFailed builds a vendor error. A zero status becomes 500 and an
// empty message becomes the fallback text.
func VendorRequestFailed(status int, message string, cause error) *Error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = VendorFallbackMessage
	}
	return &Error{Kind: KindVendorRequestFailed, Status: status, Message: message, Err: cause}
}

// MalformedStreamFrame wraps a JSON decode failure for one line.
func MalformedStreamFrame(line string, cause error) *Error {
	return &Error{Kind: KindMalformedStreamFrame, Message: line, Err: cause}
}

// NetworkFailure builds the generic client-side fetch failure.
func NetworkFailure(cause error) *Error {
	return &Error{Kind: KindNetworkFailure, Message: NetworkFailureMessage, Err: cause}
}

// StreamFailed carries the message of an error frame.
func StreamFailed(message string) *Error {
	return &Error{Kind: KindStreamFailed, Message: message}
}

// KindOf returns the kind of err, or 0 when err is not a *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// Describe returns the status and message a boundary should report for err.
func Describe(err error) (int, string) {
	var e *Error
	if errors.As(err, &e) {
		status := e.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		return status, e.Message
	}
	if err != nil && err.Error() != "" {
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, VendorFallbackMessage
}
