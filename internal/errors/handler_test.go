package errors

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aeroreduce/internal/aero"
)

func newTestHandler(includeStack bool) *ErrorHandler {
	return NewErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), includeStack)
}

func TestErrorToProblem(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cases/reduce", nil)

	pre := &aero.PreconditionError{Op: "surface", Field: "top pressures", Message: "length mismatch", Want: 5, Got: 4}
	dom := &aero.DomainError{Op: "rake velocities", Field: "pressure", Index: 2, Value: -3, Err: errors.New("negative")}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
	}{
		{"precondition", fmt.Errorf("surface forces: %w", pre), http.StatusBadRequest, TypePrecondition},
		{"domain", fmt.Errorf("wake: %w", dom), http.StatusUnprocessableEntity, TypeDomain},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, TypeTimeout},
		{"body too large", &http.MaxBytesError{Limit: 10}, http.StatusRequestEntityTooLarge, TypePayloadTooLarge},
		{"api validation", ErrValidationFailed, http.StatusBadRequest, TypeValidation},
		{"rate limit", ErrRateLimitExceeded, http.StatusTooManyRequests, TypeRateLimit},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, TypeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := h.ErrorToProblem(tt.err, r)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantType, p.Type)
			assert.Equal(t, "/api/v1/cases/reduce", p.Instance)
		})
	}
}

func TestErrorToProblemExtensions(t *testing.T) {
	h := newTestHandler(false)
	r := httptest.NewRequest(http.MethodPost, "/api/v1/sweeps/reduce", nil)

	err := fmt.Errorf("sweep aborted: %w", &aero.CaseError{
		Index: 4,
		ID:    "a8",
		Alpha: 8,
		Err:   &aero.DomainError{Op: "wake drag", Field: "velocity", Index: 7, Value: -1},
	})
	p := h.ErrorToProblem(err, r)

	assert.Equal(t, TypeDomain, p.Type)
	assert.Equal(t, "wake drag", p.Extensions["op"])
	assert.Equal(t, 7, p.Extensions["index"])
	assert.Equal(t, 4, p.Extensions["case_index"])
	assert.Equal(t, "a8", p.Extensions["case_id"])
}

func TestHandleErrorWritesProblem(t *testing.T) {
	h := newTestHandler(false)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v1/cases/reduce", nil)

	h.HandleError(w, r, &aero.PreconditionError{Op: "config", Field: "chord", Message: "must be positive"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "json")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, TypePrecondition, body["type"])
	assert.Equal(t, "chord", body["field"])
	assert.Contains(t, body, "trace_id")
	assert.NotContains(t, body, "want")
}

func TestHandleErrorNil(t *testing.T) {
	w := httptest.NewRecorder()
	newTestHandler(false).HandleError(w, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, 0, w.Body.Len())
}

func TestRecoveryMiddleware(t *testing.T) {
	h := newTestHandler(true)
	handler := h.RecoveryMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("integrator exploded")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "integrator exploded", body["panic"])
	assert.Contains(t, body, "stack")
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	h := newTestHandler(false)

	w := httptest.NewRecorder()
	h.NotFound(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.MethodNotAllowed(w, httptest.NewRequest(http.MethodDelete, "/api/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "DELETE")
}
