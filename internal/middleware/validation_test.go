package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "aeroreduce/internal/errors"
	api "aeroreduce/pkg/contracts/api/v1"
)

func samples(n int) []api.Sample {
	out := make([]api.Sample, n)
	for i := range out {
		out[i] = api.Sample{Value: 10, Err: 0.1}
	}
	return out
}

func TestRequestValidatorDecode(t *testing.T) {
	rv := NewRequestValidator(discardLogger())

	body := `{"alpha": 4, "pressures": {"top": [{"value": -20, "err": 0.5}, {"value": -5, "err": 0.5}],
		"bottom": [{"value": 3}, {"value": -5}]},
		"rake": {"config1": [{"value": 61}, {"value": 40}, {"value": 61}],
		"config2": [{"value": 61}, {"value": 40}, {"value": 61}], "offset2": 0.005}}`
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

	var req api.CaseRequest
	require.NoError(t, rv.Decode(r, &req))
	assert.Equal(t, 4.0, req.Alpha)
	assert.Len(t, req.Rake.Config2, 3)
	assert.Nil(t, req.AlphaErr)
}

func TestRequestValidatorRejectsMalformedJSON(t *testing.T) {
	rv := NewRequestValidator(discardLogger())
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"alpha": `))

	var req api.CaseRequest
	err := rv.Decode(r, &req)

	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INVALID_REQUEST", apiErr.ErrorCode)
}

func TestRequestValidatorFieldErrors(t *testing.T) {
	rv := NewRequestValidator(discardLogger())
	req := api.SweepRequest{
		Cases: []api.CaseRequest{{
			Alpha: 120,
			Pressures: api.SurfacePressures{
				Top:    []api.Sample{{Value: 1, Err: -1}, {Value: 2}},
				Bottom: samples(1),
			},
			Rake: api.RakePressures{Config1: samples(3), Config2: samples(3)},
		}},
	}

	err := rv.Struct(&req)
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	details, ok := apiErr.Details.([]apierrors.ValidationError)
	require.True(t, ok)
	fields := make(map[string]string, len(details))
	for _, d := range details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "alpha must be less than or equal to 90", fields["cases[0].alpha"])
	assert.Contains(t, fields, "cases[0].pressures.top[0].err")
	assert.Equal(t, "bottom must contain at least 2 items", fields["cases[0].pressures.bottom"])
}

func TestRequestValidatorEmptySweep(t *testing.T) {
	err := NewRequestValidator(discardLogger()).Struct(&api.SweepRequest{})
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	details := apiErr.Details.([]apierrors.ValidationError)
	assert.Equal(t, "cases", details[0].Field)
}

func TestRequestValidatorPassesThroughMaxBytes(t *testing.T) {
	rv := NewRequestValidator(discardLogger())
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name": "a long sweep name"}`))
	r.Body = http.MaxBytesReader(w, r.Body, 4)

	var req api.SweepRequest
	err := rv.Decode(r, &req)
	var maxBytes *http.MaxBytesError
	assert.ErrorAs(t, err, &maxBytes)
}

func TestContentTypeValidator(t *testing.T) {
	handler := ContentTypeValidator(apierrors.NewErrorHandler(discardLogger(), false), "application/json")(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) }))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader("a,b"))
	r.Header.Set("Content-Type", "text/csv")
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
