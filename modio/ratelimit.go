package modio

import (
	"net/http"
	"strconv"
)

// Rate-limit response headers. RetryAfter is expressed in minutes.
const (
	headerRateLimitRemaining  = "X-Ratelimit-Remaining"
	headerRateLimitRetryAfter = "X-Ratelimit-Retryafter"
)

// rateLimit is the snapshot of the rate-limit headers of one response.
// Both values are independently optional.
type rateLimit struct {
	remainingVal  uint64
	retryAfterVal uint64
	hasRemaining  bool
	hasRetryAfter bool
}

func (r rateLimit) remaining() (uint64, bool)  { return r.remainingVal, r.hasRemaining }
func (r rateLimit) retryAfter() (uint64, bool) { return r.retryAfterVal, r.hasRetryAfter }

// exhausted reports whether the response says no requests remain and
// names a retry-after delay. Both headers must be present.
func (r rateLimit) exhausted() bool {
	return r.hasRemaining && r.remainingVal == 0 && r.hasRetryAfter
}

// parseRateLimit reads the rate-limit headers of a response. Unparseable
// values are treated as absent.
func parseRateLimit(h http.Header) rateLimit {
	var rl rateLimit
	if v := h.Get(headerRateLimitRemaining); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			rl.remainingVal = n
			rl.hasRemaining = true
		}
	}
	if v := h.Get(headerRateLimitRetryAfter); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			rl.retryAfterVal = n
			rl.hasRetryAfter = true
		}
	}
	return rl
}
