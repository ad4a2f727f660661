package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsKeepKindAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("%w: insert submission: %w", ErrPersistence, cause)

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
}
