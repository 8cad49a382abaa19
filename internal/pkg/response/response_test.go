package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vetclinic/internal/pkg/validator"
)

func perform(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/x", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestPaged(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Paged(c, []int{1, 2}, 1, 2, 5)
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body["message"])
	data := body["data"].(map[string]any)
	p := data["pagination"].(map[string]any)
	assert.Equal(t, float64(3), p["pages"])
	assert.Equal(t, float64(5), p["total"])
}

func TestValidationError(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		ValidationError(c, []validator.FieldError{{Field: "phone", Message: "is required"}})
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Equal(t, "phone", errs[0].(map[string]any)["field"])
}

func TestInternalHidesDetail(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Internal(c, errors.New("pq: connection refused"))
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestSuccessAlwaysCarriesMessage(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		Success(c, http.StatusCreated, map[string]int{"id": 1})
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Created", body["message"])

	_, body = perform(t, func(c *gin.Context) {
		Message(c, http.StatusOK, "", nil)
	})
	_, ok := body["message"]
	assert.True(t, ok)
}
