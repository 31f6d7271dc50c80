package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeValidationBatchEmpty, http.StatusBadRequest},
		{ErrCodeValidationBatchSize, http.StatusBadRequest},
		{ErrCodeNotFoundRoute, http.StatusNotFound},
		{ErrCodeInternalRender, http.StatusInternalServerError},
		{ErrCodeInternalUnexpected, http.StatusInternalServerError},
		{ErrorCode("something_unmapped"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.code.HTTPStatus(), "code %s", tt.code)
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	appErr := NewAppError(ErrCodeInternalUnexpected, "something broke", inner)

	assert.Equal(t, "internal_unexpected_error: something broke", appErr.Error())
	assert.Equal(t, inner, errors.Unwrap(appErr))
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus())
}

func TestAppError_ErrorsAsThroughWrapping(t *testing.T) {
	appErr := NewAppError(ErrCodeValidationBatchEmpty, "empty", nil)
	wrapped := fmt.Errorf("handler: %w", appErr)

	var target *AppError
	require.True(t, errors.As(wrapped, &target))
	assert.Equal(t, ErrCodeValidationBatchEmpty, target.Code)
}

func TestNewAppErrorWithDetails(t *testing.T) {
	appErr := NewAppErrorWithDetails(ErrCodeValidationBatchSize, "too many", nil, map[string]any{"max": 100})
	assert.Equal(t, 100, appErr.Details["max"])
}
