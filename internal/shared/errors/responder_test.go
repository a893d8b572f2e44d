package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respondWith(t *testing.T, r *Responder, err error) (*httptest.ResponseRecorder, ProblemDetail) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/orders/o-1", nil)

	r.RespondError(c, err)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	return rec, problem
}

func TestResponder_FirstMatchingMapperWins(t *testing.T) {
	never := func(error) (ProblemDetail, bool) { return ProblemDetail{}, false }
	conflict := func(error) (ProblemDetail, bool) { return ErrInvalidTransition.WithDetail("already verified"), true }
	r := NewResponder("https://gamerz.test/", never, conflict)

	rec, problem := respondWith(t, r, stderrors.New("boom"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))
	assert.Equal(t, "https://gamerz.test"+TypeTransition, problem.Type)
	assert.Equal(t, "/v1/orders/o-1", problem.Instance)
	assert.Equal(t, "already verified", problem.Detail)
}

func TestResponder_UnknownErrorHidesMessage(t *testing.T) {
	rec, problem := respondWith(t, NewResponder(""), stderrors.New("dial tcp 10.0.0.5:5432: refused"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, problem.Detail)
	assert.Equal(t, TypeInternal, problem.Type)
}

func TestResponder_ProblemErrorPassesThrough(t *testing.T) {
	rec, problem := respondWith(t, NewResponder(""), ErrNotFound.WithDetail("order o-1"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "order o-1", problem.Detail)
}
