// Package respond writes the JSON answers and error envelopes of the API.
package respond

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"cornershopparser/internal/apis/cornershop/endpoints"
	"cornershopparser/internal/domain/models"
)

// Problem is an error with a ready HTTP answer.
type Problem struct {
	Status     int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

func (p *Problem) Error() string { return p.Code + ": " + p.Message }

func BadRequest(msg string) *Problem {
	return &Problem{Status: http.StatusBadRequest, Code: "bad_request", Message: msg}
}

type ErrorBody struct {
	Error Problem `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	h := w.Header()
	h.Set("Content-Type", "application/json; charset=utf-8")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, msg string) {
	WriteJSON(w, status, ErrorBody{Error: Problem{Code: code, Message: msg}})
}

// WriteFailure answers err with the matching Problem; unknown errors are
// logged and hidden behind a 500.
func WriteFailure(w http.ResponseWriter, log *slog.Logger, err error) {
	p := problemFor(err)
	if p == nil {
		log.Error("request failed", "err", err)
		p = &Problem{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
	}
	WriteJSON(w, p.Status, ErrorBody{Error: *p})
}

func problemFor(err error) *Problem {
	var (
		p        *Problem
		notFound *models.NotFoundError
		apiErr   *endpoints.APIError
	)
	switch {
	case errors.As(err, &p):
		return p
	case errors.As(err, &notFound):
		return &Problem{Status: http.StatusNotFound, Code: "not_found", Message: notFound.Error(), Suggestion: notFound.Suggestion}
	case errors.As(err, &apiErr):
		switch apiErr.Status {
		case http.StatusNotFound:
			return &Problem{Status: http.StatusNotFound, Code: "not_found", Message: apiErr.Message}
		case http.StatusTooManyRequests:
			return &Problem{Status: http.StatusTooManyRequests, Code: "rate_limited", Message: "too many requests"}
		}
		return &Problem{Status: http.StatusBadGateway, Code: "upstream_error", Message: apiErr.Error()}
	case errors.Is(err, models.ErrMalformedResponse):
		return &Problem{Status: http.StatusBadGateway, Code: "malformed_response", Message: err.Error()}
	}
	return nil
}

// Get serves GET requests with fn under timeout and writes its result as a
// 200. Errors go through WriteFailure.
func Get(log *slog.Logger, timeout time.Duration, fn func(ctx context.Context, r *http.Request) (any, error)) http.HandlerFunc {
	if log == nil {
		log = slog.Default()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			WriteError(w, http.StatusMethodNotAllowed, "method_not_allowed", "GET only")
			return
		}

		ctx := r.Context()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		v, err := fn(ctx, r)
		if err != nil {
			WriteFailure(w, log, err)
			return
		}
		WriteJSON(w, http.StatusOK, v)
	}
}

// Now is the fetched_at stamp of every answer.
func Now() string { return time.Now().UTC().Format(time.RFC3339) }
