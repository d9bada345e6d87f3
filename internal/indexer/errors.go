package indexer

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
)

// Error taxonomy for index writes. Retryable failures go to the retry
// queue; permanent ones are logged and dropped.

// IsRetryable classifies a failed index call. Transport-level errors
// (connection refused, timeouts) and HTTP 5xx/429 are transient; anything
// else (mapping conflicts, validation) will not succeed on retry.
func IsRetryable(statusCode int, err error) bool {
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return true
		}
		var netErr net.Error
		if errors.As(err, &netErr) {
			return true
		}
		msg := err.Error()
		return strings.Contains(msg, "connection refused") ||
			strings.Contains(msg, "connection reset") ||
			strings.Contains(msg, "no such host") ||
			strings.Contains(msg, "EOF")
	}
	if statusCode == http.StatusTooManyRequests {
		return true
	}
	return statusCode >= 500
}
