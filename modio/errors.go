package modio

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// errorRefTermsRequired is the error_ref the API uses on a 403 when the
// user still has to accept the Terms of Use before external authorization
// can continue. See https://docs.mod.io/#error-codes.
const errorRefTermsRequired = 11051

// ErrTooManyRedirects is wrapped by a RequestError when a download chases
// more than maxRedirects consecutive redirects.
var ErrTooManyRedirects = errors.New("too many redirects")

// AuthReason identifies why an authentication error was raised.
type AuthReason int

const (
	// Unauthorized means the API key or access token is incorrect,
	// revoked or expired.
	Unauthorized AuthReason = iota
	// TokenRequired means the endpoint needs an OAuth access token and
	// the client only holds an API key.
	TokenRequired
	// TermsAcceptanceRequired means the Terms of Use must be accepted
	// before continuing external authorization.
	TermsAcceptanceRequired
)

func (r AuthReason) String() string {
	switch r {
	case Unauthorized:
		return "unauthorized"
	case TokenRequired:
		return "token required"
	case TermsAcceptanceRequired:
		return "terms acceptance required"
	}
	return "unknown"
}

// AuthError reports an authentication failure.
type AuthError struct {
	Reason   AuthReason
	ErrorRef int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication error: %s", e.Reason)
}

// ValidationError reports a 422 response carrying per-field messages.
type ValidationError struct {
	Message  string
	Errors   map[string]string
	ErrorRef int
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %q %v", e.Message, e.Errors)
}

// RateLimitError reports that the rate limit tied to the credentials has
// been exhausted.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("API rate limit reached, retry in %s", e.RetryAfter)
}

// StatusError reports a non-2xx response that matched no more specific
// category. The decoded error envelope is carried as the wrapped cause.
type StatusError struct {
	Code     int
	ErrorRef int
	Envelope *ErrorEnvelope
}

func (e *StatusError) Error() string {
	prefix := "HTTP status client error"
	if e.Code >= 500 {
		prefix = "HTTP status server error"
	}
	if e.Envelope != nil && e.Envelope.Message != "" {
		return fmt.Sprintf("%s (%d): %s", prefix, e.Code, e.Envelope.Message)
	}
	return fmt.Sprintf("%s (%d)", prefix, e.Code)
}

// BuilderError reports a request that could not be constructed. It is
// returned before any network I/O takes place.
type BuilderError struct {
	Err error
}

func (e *BuilderError) Error() string { return fmt.Sprintf("builder error: %v", e.Err) }
func (e *BuilderError) Unwrap() error { return e.Err }

// RequestError reports a transport failure (DNS, TLS, timeout, broken
// connection) while executing a request.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return fmt.Sprintf("http request error: %v", e.Err) }
func (e *RequestError) Unwrap() error { return e.Err }

// DecodeError reports a response body that did not match the expected
// JSON shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("error decoding response body: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// DownloadReason identifies why a DownloadAction could not be resolved.
type DownloadReason int

const (
	// NoPrimaryFile means the mod has no primary file to download.
	NoPrimaryFile DownloadReason = iota
	// FileNotFound means the requested modfile does not exist.
	FileNotFound
	// VersionNotFound means no modfile matches the requested version.
	VersionNotFound
	// MultipleFilesFound means several modfiles match the requested
	// version and the resolve policy forbids picking one.
	MultipleFilesFound
)

// DownloadError reports a DownloadAction that could not be resolved to a
// binary URL.
type DownloadError struct {
	Reason  DownloadReason
	GameID  int64
	ModID   int64
	FileID  int64
	Version string
}

func (e *DownloadError) Error() string {
	switch e.Reason {
	case NoPrimaryFile:
		return fmt.Sprintf("mod %d/%d has no primary file", e.GameID, e.ModID)
	case FileNotFound:
		return fmt.Sprintf("file %d of mod %d/%d not found", e.FileID, e.GameID, e.ModID)
	case VersionNotFound:
		return fmt.Sprintf("no file with version %q found for mod %d/%d", e.Version, e.GameID, e.ModID)
	case MultipleFilesFound:
		return fmt.Sprintf("multiple files with version %q found for mod %d/%d", e.Version, e.GameID, e.ModID)
	}
	return "download error"
}

// IsAuth reports whether err is an authentication failure for which the
// caller should obtain new credentials.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae) &&
		(ae.Reason == Unauthorized || ae.Reason == TokenRequired)
}

// IsTermsAcceptanceRequired reports whether err indicates the Terms of
// Use must be accepted before continuing.
func IsTermsAcceptanceRequired(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae) && ae.Reason == TermsAcceptanceRequired
}

// IsRateLimited reports whether err indicates the credentials' rate limit
// has been exhausted.
func IsRateLimited(err error) bool {
	var re *RateLimitError
	return errors.As(err, &re)
}

// IsValidation reports whether err carries field validation errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsDownload reports whether err comes from resolving a DownloadAction.
func IsDownload(err error) bool {
	var de *DownloadError
	return errors.As(err, &de)
}

// IsDecode reports whether err comes from deserializing a response body.
func IsDecode(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// Status returns the HTTP status code if err was generated from a
// non-2xx response that classified as a generic status error.
func Status(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// ErrorRef returns the API's numeric error reference, if err carries one.
func ErrorRef(err error) (int, bool) {
	var (
		ae *AuthError
		ve *ValidationError
		se *StatusError
	)
	switch {
	case errors.As(err, &ae):
		return ae.ErrorRef, ae.ErrorRef != 0
	case errors.As(err, &ve):
		return ve.ErrorRef, ve.ErrorRef != 0
	case errors.As(err, &se):
		return se.ErrorRef, se.ErrorRef != 0
	}
	return 0, false
}

// classify maps a non-2xx response to a typed error. The rate-limit check
// takes precedence over anything the body says: a response with zero
// remaining requests and a retry-after value is a rate-limit error no
// matter the status or envelope.
func classify(status int, rate rateLimit, env ErrorEnvelope) error {
	if remaining, ok := rate.remaining(); ok && remaining == 0 {
		if retryAfter, ok := rate.retryAfter(); ok {
			return &RateLimitError{RetryAfter: time.Duration(retryAfter) * time.Minute}
		}
	}
	switch {
	case status == http.StatusUnprocessableEntity:
		return &ValidationError{
			Message:  env.Message,
			Errors:   env.Errors,
			ErrorRef: env.ErrorRef,
		}
	case status == http.StatusUnauthorized:
		return &AuthError{Reason: Unauthorized, ErrorRef: env.ErrorRef}
	case status == http.StatusForbidden && env.ErrorRef == errorRefTermsRequired:
		return &AuthError{Reason: TermsAcceptanceRequired, ErrorRef: env.ErrorRef}
	}
	return &StatusError{Code: status, ErrorRef: env.ErrorRef, Envelope: &env}
}
