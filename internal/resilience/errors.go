package resilience

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// StatusError is a non-2xx response from an upstream API.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Retryable reports whether the status is worth retrying.
func (e *StatusError) Retryable() bool {
	return RetryableStatus(e.StatusCode)
}

// RetryableStatus reports whether an HTTP status indicates a transient failure.
func RetryableStatus(code int) bool {
	switch code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsRetryable reports whether err (or anything it wraps) is transient: a
// retryable StatusError, a network timeout, or a reset or refused connection.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.Retryable()
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNABORTED)
}
