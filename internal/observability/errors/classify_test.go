package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type customErr struct{}

func (customErr) Error() string { return "custom" }

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "canceled", Classify(fmt.Errorf("read: %w", context.Canceled)))
	assert.Equal(t, "timeout", Classify(context.DeadlineExceeded))
	assert.Equal(t, "errors_customerr", Classify(fmt.Errorf("wrap: %w", customErr{})))
	assert.Equal(t, "errors_errorstring", Classify(errors.New("plain")))
}
