package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &AppError{Code: ErrCodeInternal, Message: "audit insert failed", Cause: cause}

	assert.Equal(t, "audit insert failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad", ValidationField("limit", "bad").Error())
}

func TestCodeHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ValidationField("limit", "must be positive"))

	assert.True(t, IsValidation(wrapped))
	assert.Equal(t, ErrCodeValidation, GetCode(wrapped))
	assert.Equal(t, "limit", GetField(wrapped))
	assert.False(t, IsValidation(errors.New("plain")))
	assert.Empty(t, GetCode(errors.New("plain")))
	assert.Empty(t, GetField(errors.New("plain")))
}
