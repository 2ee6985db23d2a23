package shared

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes trace ID when present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusNotFound, "Card not found")

		require.Equal(t, http.StatusNotFound, rec.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Card not found", response.Error)
		assert.NotEmpty(t, response.TraceID)
	})

	t.Run("omits trace ID when absent", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Validation error")

		assert.NotContains(t, rec.Body.String(), "trace_id")
	})

	t.Run("status code never serialized", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Validation error")

		var raw map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "Code")
		assert.NotContains(t, raw, "code")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	t.Run("internal error detail never reaches the client", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		rec := httptest.NewRecorder()

		internalErr := errors.New("pq: connection refused at postgres://user:secret@db:5432")
		RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
			"An unexpected error occurred", internalErr)

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "secret")
		assert.NotContains(t, rec.Body.String(), "connection refused")
		assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
	})

	t.Run("elevated log level option does not change the response", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/test", nil)
		rec := httptest.NewRecorder()

		RespondWithErrorAndLog(rec, req, http.StatusForbidden,
			"Card generation quota reached", errors.New("quota exceeded"),
			WithElevatedLogLevel())

		require.Equal(t, http.StatusForbidden, rec.Code)

		var response ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
		assert.Equal(t, "Card generation quota reached", response.Error)
	})
}
