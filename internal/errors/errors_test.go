package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodeMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, BadRequest("nope").Status)
	assert.Equal(t, http.StatusUnprocessableEntity, ValidationError("field", "bad").Status)
	assert.Equal(t, http.StatusNotFound, NotFound("user").Status)
	assert.Equal(t, http.StatusBadRequest, UnsupportedPlatform("instagram").Status)
	assert.Equal(t, http.StatusInternalServerError, Storage("write", errors.New("x")).Status)
	assert.Equal(t, http.StatusServiceUnavailable, ServiceUnavailable("renderer").Status)
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("no token").Status)
}

func TestStorageWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("load user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrStorage, err.Code)
}

func TestAsAPIErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while handling request: %w", NotFound("template"))

	apiErr, ok := AsAPIError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrNotFound, apiErr.Code)
	assert.True(t, IsNotFound(wrapped))
}

func TestAsAPIErrorPlainError(t *testing.T) {
	_, ok := AsAPIError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsNotFound(errors.New("plain")))
}

func TestErrorStringIncludesField(t *testing.T) {
	err := ValidationError("start", "must be a date")
	assert.Contains(t, err.Error(), "start")
	assert.Contains(t, err.Error(), string(ErrValidation))
}

func TestWithDetails(t *testing.T) {
	err := BadRequest("bad input").WithDetails("targets list was empty")
	assert.Equal(t, "targets list was empty", err.Details)
}
