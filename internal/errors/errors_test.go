package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIErrorRender(t *testing.T) {
	tests := []struct {
		name       string
		apiError   *APIError
		wantStatus int
	}{
		{"invalid request", ErrInvalidRequest, http.StatusBadRequest},
		{"payload too large", ErrPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"internal", ErrInternalServer, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			require.NoError(t, render.Render(w, r, tt.apiError))
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.apiError.Message, tt.apiError.Error())
		})
	}
}

func TestNewValidationErrors(t *testing.T) {
	err := NewValidationErrors([]ValidationError{{Field: "cases", Message: "is required"}})
	assert.Equal(t, http.StatusBadRequest, err.StatusCode)
	assert.Equal(t, "VALIDATION_FAILED", err.ErrorCode)
	details, ok := err.Details.([]ValidationError)
	require.True(t, ok)
	assert.Equal(t, "cases", details[0].Field)
}

func TestProblemDetailsMarshalJSON(t *testing.T) {
	problem := NewProblemDetails(http.StatusUnprocessableEntity, TypeDomain, "Numerical Domain Error", "bad port", "/api/v1/cases/reduce").
		WithExtension("index", 3).
		WithExtension("type", "ignored")

	data, err := json.Marshal(problem)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, TypeDomain, got["type"], "standard members win over extensions")
	assert.Equal(t, float64(422), got["status"])
	assert.Equal(t, "bad port", got["detail"])
	assert.Equal(t, float64(3), got["index"])
}

func TestProblemDetailsOmitsEmptyMembers(t *testing.T) {
	data, err := json.Marshal(&ProblemDetails{Type: TypeInternal, Title: "x", Status: 500})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "detail")
	assert.NotContains(t, string(data), "instance")
}
