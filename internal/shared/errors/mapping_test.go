package errors

import (
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawatr0788-code/Gamerz-Kit/internal/shared/apperrors"
)

func TestMapAppError_Status(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "unauthenticated", err: apperrors.ErrUnauthenticated, want: http.StatusUnauthorized},
		{name: "forbidden", err: apperrors.ErrAuthorization, want: http.StatusForbidden},
		{name: "validation", err: apperrors.Validation(stderrors.New("price is required")), want: http.StatusBadRequest},
		{name: "transition", err: apperrors.InvalidTransition(stderrors.New("no")), want: http.StatusConflict},
		{name: "not found", err: apperrors.NotFound(stderrors.New("order not found")), want: http.StatusNotFound},
		{name: "upload", err: apperrors.Upload(stderrors.New("reset")), want: http.StatusBadGateway},
		{name: "network", err: apperrors.Network(stderrors.New("dial tcp")), want: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problem, ok := MapAppError(tt.err)
			require.True(t, ok)
			assert.Equal(t, tt.want, problem.Status)
		})
	}
}

func TestMapAppError_ValidationListsEveryViolation(t *testing.T) {
	err := apperrors.Validation(stderrors.Join(stderrors.New("utr is required"), stderrors.New("phone is required")))

	problem, ok := MapAppError(err)
	require.True(t, ok)
	assert.Equal(t, "utr is required", problem.Detail)
	assert.Equal(t, []string{"utr is required", "phone is required"}, problem.Extensions["violations"])
}

func TestMapAppError_HidesBackendCause(t *testing.T) {
	problem, ok := MapAppError(apperrors.Network(stderrors.New("dial tcp 10.0.0.3:5432: refused")))
	require.True(t, ok)
	assert.NotContains(t, problem.Detail, "10.0.0.3")
}

func TestMapAppError_UnknownFallsThrough(t *testing.T) {
	_, ok := MapAppError(stderrors.New("boom"))
	assert.False(t, ok)
}
