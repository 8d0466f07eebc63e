package utils

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_PassesThroughSuccess(t *testing.T) {
	cb := NewCircuitBreaker("test")

	result, err := cb.Execute(context.Background(), func() (any, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestCircuitBreaker_PropagatesUpstreamError(t *testing.T) {
	cb := NewCircuitBreaker("test")
	upstreamErr := errors.New("connection refused")

	_, err := cb.Execute(context.Background(), func() (any, error) {
		return nil, upstreamErr
	})

	assert.ErrorIs(t, err, upstreamErr)
}

func TestCircuitBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("boom")

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(context.Background(), func() (any, error) {
			return nil, boom
		})
		assert.ErrorIs(t, err, boom)
	}

	// The breaker is now open: calls fail fast without reaching upstream.
	called := false
	_, err := cb.Execute(context.Background(), func() (any, error) {
		called = true
		return "ok", nil
	})

	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureStreak(t *testing.T) {
	cb := NewCircuitBreaker("test")
	boom := errors.New("boom")

	for i := 0; i < 2; i++ {
		cb.Execute(context.Background(), func() (any, error) { return nil, boom })
	}
	_, err := cb.Execute(context.Background(), func() (any, error) { return "ok", nil })
	require.NoError(t, err)

	// The streak was broken, so the next failure still reaches upstream.
	_, err = cb.Execute(context.Background(), func() (any, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)

	called := false
	cb.Execute(context.Background(), func() (any, error) {
		called = true
		return "ok", nil
	})
	assert.True(t, called)
}

func TestGenerateCode(t *testing.T) {
	code, err := GenerateCode(4)

	require.NoError(t, err)
	assert.Len(t, code, 8)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]+$`), code)
}

func TestGenerateCode_Varies(t *testing.T) {
	a, err := GenerateCode(8)
	require.NoError(t, err)
	b, err := GenerateCode(8)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
