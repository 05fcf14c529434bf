package respond

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cornershopparser/internal/apis/cornershop/endpoints"
	"cornershopparser/internal/domain/models"
	"cornershopparser/internal/logger"
)

func TestWriteFailure(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("wrap: %w", &models.NotFoundError{Entity: "aisle", Value: "x"}), 404, "not_found"},
		{"upstream 404", &endpoints.APIError{Status: 404}, 404, "not_found"},
		{"upstream 429", fmt.Errorf("wrap: %w", &endpoints.APIError{Status: 429}), 429, "rate_limited"},
		{"upstream 500", &endpoints.APIError{Status: 500}, 502, "upstream_error"},
		{"malformed", &models.MalformedResponseError{Entity: "product", Field: "id"}, 502, "malformed_response"},
		{"problem", fmt.Errorf("wrap: %w", BadRequest("q is required")), 400, "bad_request"},
		{"other", errors.New("boom"), 500, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteFailure(rec, logger.Discard(), tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body.Error.Code)
			assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		})
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, http.StatusCreated, map[string]int{"n": 1})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"n": 1}`, rec.Body.String())
}

func TestGet(t *testing.T) {
	var deadline time.Time
	h := Get(logger.Discard(), time.Minute, func(ctx context.Context, r *http.Request) (any, error) {
		deadline, _ = ctx.Deadline()
		if r.URL.Query().Get("fail") != "" {
			return nil, &models.NotFoundError{Entity: "aisle", Value: "x", Suggestion: "Sucos"}
		}
		return map[string]string{"ok": "yes"}, nil
	})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok": "yes"}`, rec.Body.String())
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?fail=1", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Sucos", body.Error.Suggestion)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}
