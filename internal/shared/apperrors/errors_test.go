package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsKindAndCause(t *testing.T) {
	cause := errors.New("price must not be negative")
	err := Validation(cause)

	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrValidation, Kind(err))
}

func TestWrapIsIdempotent(t *testing.T) {
	err := NotFound(NotFound(errors.New("product p-1")))
	assert.Equal(t, "not found: product p-1", err.Error())
}

func TestUnauthenticatedIsAuthorization(t *testing.T) {
	assert.ErrorIs(t, ErrUnauthenticated, ErrAuthorization)
	assert.Equal(t, ErrUnauthenticated, Kind(ErrUnauthenticated))
	assert.Equal(t, ErrAuthorization, Kind(ErrAuthorization))
}

func TestKindUnknown(t *testing.T) {
	assert.Nil(t, Kind(errors.New("boom")))
	assert.Nil(t, Validation(nil))
}
