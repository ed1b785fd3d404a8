/*
errors.go - Centralized error types for the list-view engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  View packages should wrap these errors with additional context.

ERROR CATEGORIES:
  1. Transport errors  - The request never completed (offline, timeout, bad JSON)
  2. Authorization     - 401; signaled distinctly so the host can redirect to login
  3. Business errors   - The backend answered with success:false or a non-2xx
  4. Local guards      - Empty export, declined confirmation, in-flight mutation

USAGE:
  Callers branch on the taxonomy, not on concrete types:

    if listview.IsUnauthorized(err) {
        host.RedirectToLogin()
    }

SEE ALSO:
  - gateway.go: Produces transport/authorization/business errors
  - controller.go: Converts every error into a user-visible outcome
*/
package listview

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrUnauthorized is returned for 401 responses. It is signaled distinctly
	// so the host redirects to login instead of rendering an error list.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRequestFailed is the base of every business failure reported by the
	// backend (success:false or a non-2xx status with a message).
	ErrRequestFailed = errors.New("request failed")

	// ErrTransport is the base of every failure where no usable response
	// arrived: network failure, timeout, or a non-JSON body.
	ErrTransport = errors.New("transport failure")

	// ErrNothingToExport is returned when exporting an empty filtered list.
	// The user gets a notice instead of an empty file.
	ErrNothingToExport = errors.New("nothing to export")

	// ErrConfirmationDeclined is returned when the user declines the blocking
	// confirmation for a delete/restore/purge. Not surfaced as a failure.
	ErrConfirmationDeclined = errors.New("confirmation declined")

	// ErrMutationInFlight is returned when a mutation is submitted while a
	// previous one is still Submitting. No queuing, no retry.
	ErrMutationInFlight = errors.New("mutation already in flight")

	// ErrStaleResponse marks a load whose response arrived after a newer load
	// superseded it. The response is discarded, not rendered.
	ErrStaleResponse = errors.New("stale response discarded")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// StatusError is a business failure reported by the backend. Message carries
// the body's message verbatim so the user sees exactly what the server said.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

func (e *StatusError) Unwrap() error { return ErrRequestFailed }

// TransportError wraps a request that never produced a usable response.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return ErrTransport }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsUnauthorized reports whether the error is the distinct 401 signal.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsTransport reports whether the request never completed. These render the
// "failed to load" state with a retry affordance.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsBusiness reports whether the backend rejected the operation. These are
// surfaced verbatim; the user must resubmit explicitly.
func IsBusiness(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// UserMessage extracts the text to show the user for any engine error.
func UserMessage(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	if IsTransport(err) {
		return "Could not reach the server. Please check your connection and retry."
	}
	return err.Error()
}
