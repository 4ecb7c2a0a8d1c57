package httpx

import (
	"fmt"
	"strings"
)

// HTTPError is the shared non-2xx result for the outbound JSON clients
// (renderer, mail). Sends and generations are not idempotent, so callers
// get the error as-is; nothing below this layer retries.
type HTTPError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e == nil {
		return "<nil http error>"
	}
	msg := strings.TrimSpace(e.Body)
	if msg == "" {
		msg = "<empty body>"
	}
	if len(msg) > 4000 {
		msg = msg[:4000] + "..."
	}
	return fmt.Sprintf("%s http %d: %s", e.Service, e.StatusCode, msg)
}

func (e *HTTPError) HTTPStatusCode() int {
	if e == nil {
		return 0
	}
	return e.StatusCode
}
