package model_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/envoice-go/internal/model"
)

func TestAPIError(t *testing.T) {
	err := model.NewAPIError("boom", 500, "internal_error")

	assert.Equal(t, 500, err.StatusCode)
	assert.Equal(t, "internal_error", err.Code)
	assert.Equal(t, "api error 500 [internal_error]: boom", err.Error())
}

func TestAPIError_WithoutCode(t *testing.T) {
	err := model.NewAPIError("HTTP 503", 503, "")
	assert.Equal(t, "api error 503: HTTP 503", err.Error())
}

func TestQuotaExceededError(t *testing.T) {
	err := model.NewQuotaExceededError("Monthly quota exceeded")

	assert.Equal(t, 402, err.StatusCode)
	assert.Equal(t, "quota_exceeded", err.Code)
	assert.Equal(t, "quota exceeded: Monthly quota exceeded", err.Error())
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := model.NewNetworkError("connection failed", cause)

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection failed")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNetworkError_WithoutCause(t *testing.T) {
	err := model.NewNetworkError("request timeout", nil)
	assert.Equal(t, "network error: request timeout", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}
