package rest

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageIncludesContext(t *testing.T) {
	err := NewRateLimitError("github", "API rate limit exceeded")

	message := err.Error()
	assert.Contains(t, message, "github")
	assert.Contains(t, message, "rate limit exceeded")
	assert.Contains(t, message, "API rate limit exceeded")
	assert.Contains(t, message, "429")
}

func TestErrorIsMatchesOnType(t *testing.T) {
	wrapped := fmt.Errorf("publish check: %w", NewAuthenticationError("github", "bad credentials"))

	assert.True(t, errors.Is(wrapped, &Error{Type: ErrTypeAuthentication}))
	assert.False(t, errors.Is(wrapped, &Error{Type: ErrTypeRateLimit}))
	assert.False(t, errors.Is(wrapped, errors.New("other")))
}

func TestConstructorsSetRetryability(t *testing.T) {
	assert.False(t, NewAuthenticationError("github", "").IsRetryable())
	assert.True(t, NewRateLimitError("github", "").IsRetryable())
	assert.True(t, NewServiceUnavailableError("github", "").IsRetryable())
	assert.False(t, NewInvalidRequestError("github", "").IsRetryable())
	assert.True(t, NewTimeoutError("github", "").IsRetryable())
	assert.False(t, NewNotFoundError("github", "").IsRetryable())
}

func TestErrorTypeStrings(t *testing.T) {
	assert.Equal(t, "authentication error", ErrTypeAuthentication.String())
	assert.Equal(t, "not found", ErrTypeNotFound.String())
	assert.Equal(t, "unknown error", ErrTypeUnknown.String())
}
