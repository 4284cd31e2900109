package modio

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	limited := rateLimit{
		remainingVal: 0, hasRemaining: true,
		retryAfterVal: 2, hasRetryAfter: true,
	}

	tests := []struct {
		name   string
		status int
		rate   rateLimit
		env    ErrorEnvelope
		check  func(t *testing.T, err error)
	}{
		{
			name:   "exhausted limit beats everything",
			status: http.StatusUnprocessableEntity,
			rate:   limited,
			env:    ErrorEnvelope{Code: 422, Message: "irrelevant"},
			check: func(t *testing.T, err error) {
				var rle *RateLimitError
				require.ErrorAs(t, err, &rle)
				assert.Equal(t, 2*time.Minute, rle.RetryAfter)
			},
		},
		{
			name:   "remaining without retry-after is not a limit",
			status: http.StatusTooManyRequests,
			rate:   rateLimit{remainingVal: 0, hasRemaining: true},
			check: func(t *testing.T, err error) {
				assert.False(t, IsRateLimited(err))
			},
		},
		{
			name:   "nonzero remaining is not a limit",
			status: http.StatusTooManyRequests,
			rate: rateLimit{
				remainingVal: 3, hasRemaining: true,
				retryAfterVal: 1, hasRetryAfter: true,
			},
			check: func(t *testing.T, err error) {
				assert.False(t, IsRateLimited(err))
			},
		},
		{
			name:   "422 is validation",
			status: http.StatusUnprocessableEntity,
			env:    ErrorEnvelope{Message: "bad", Errors: map[string]string{"name": "required"}},
			check: func(t *testing.T, err error) {
				require.True(t, IsValidation(err))
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "required", ve.Errors["name"])
			},
		},
		{
			name:   "401 is auth",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.True(t, IsAuth(err))
			},
		},
		{
			name:   "403 with terms ref",
			status: http.StatusForbidden,
			env:    ErrorEnvelope{ErrorRef: errorRefTermsRequired},
			check: func(t *testing.T, err error) {
				assert.True(t, IsTermsAcceptanceRequired(err))
			},
		},
		{
			name:   "403 without terms ref",
			status: http.StatusForbidden,
			env:    ErrorEnvelope{ErrorRef: 11007},
			check: func(t *testing.T, err error) {
				assert.False(t, IsTermsAcceptanceRequired(err))
				code, ok := Status(err)
				require.True(t, ok)
				assert.Equal(t, http.StatusForbidden, code)
			},
		},
		{
			name:   "404 is the fallback",
			status: http.StatusNotFound,
			env:    ErrorEnvelope{ErrorRef: 14000, Message: "not found"},
			check: func(t *testing.T, err error) {
				code, ok := Status(err)
				require.True(t, ok)
				assert.Equal(t, http.StatusNotFound, code)
				ref, ok := ErrorRef(err)
				require.True(t, ok)
				assert.Equal(t, 14000, ref)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify(tt.status, tt.rate, tt.env)
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestParseRateLimit(t *testing.T) {
	t.Run("both headers parse", func(t *testing.T) {
		h := http.Header{}
		h.Set(headerRateLimitRemaining, "0")
		h.Set(headerRateLimitRetryAfter, "5")
		rl := parseRateLimit(h)
		assert.True(t, rl.exhausted())

		retryAfter, ok := rl.retryAfter()
		require.True(t, ok)
		assert.Equal(t, uint64(5), retryAfter)
	})

	t.Run("absent headers", func(t *testing.T) {
		rl := parseRateLimit(http.Header{})
		_, ok := rl.remaining()
		assert.False(t, ok)
		_, ok = rl.retryAfter()
		assert.False(t, ok)
		assert.False(t, rl.exhausted())
	})

	t.Run("garbage values count as absent", func(t *testing.T) {
		h := http.Header{}
		h.Set(headerRateLimitRemaining, "soon")
		h.Set(headerRateLimitRetryAfter, "-1")
		rl := parseRateLimit(h)
		_, ok := rl.remaining()
		assert.False(t, ok)
		assert.False(t, rl.exhausted())
	})
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "authentication error: unauthorized",
		(&AuthError{Reason: Unauthorized}).Error())
	assert.Equal(t, "authentication error: terms acceptance required",
		(&AuthError{Reason: TermsAcceptanceRequired}).Error())
	assert.Contains(t,
		(&StatusError{Code: 503, Envelope: &ErrorEnvelope{Message: "down"}}).Error(),
		"server error")
	assert.Contains(t,
		(&StatusError{Code: 404}).Error(),
		"client error")
	assert.Contains(t,
		(&DownloadError{Reason: VersionNotFound, GameID: 1, ModID: 2, Version: "1.0"}).Error(),
		`version "1.0"`)
}

func TestErrorUnwrapping(t *testing.T) {
	cause := assert.AnError
	assert.ErrorIs(t, &RequestError{Err: cause}, cause)
	assert.ErrorIs(t, &BuilderError{Err: cause}, cause)
	assert.ErrorIs(t, &DecodeError{Err: cause}, cause)
}
