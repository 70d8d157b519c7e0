// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/rangepoll/models"
)

func TestWithLoggingPreservesResponse(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
	}{
		{"OK", http.StatusOK, "ok"},
		{"Created", http.StatusCreated, `{"id":"123"}`},
		{"NotFound", http.StatusNotFound, "not found"},
		{"InternalError", http.StatusInternalServerError, "error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.statusCode)
				w.Write([]byte(tc.body))
			})

			req := httptest.NewRequest("POST", "/api/test", nil)
			w := httptest.NewRecorder()
			handler(w, req)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, tc.body, w.Body.String())
			assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
		})
	}
}

func TestWithLoggingUniqueRequestIDs(t *testing.T) {
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler(w, httptest.NewRequest("GET", "/", nil))
		id := w.Header().Get("X-Request-Id")
		require.NotEmpty(t, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"message": "hello"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, `{"message":"hello"}`, strings.TrimSpace(w.Body.String()))
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusBadRequest, "ballot is missing choice \"pizza\"")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Bad Request", resp.Error)
	assert.Equal(t, `ballot is missing choice "pizza"`, resp.Message)
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"scores":{"sushi":4}}`))

		var parsed models.SubmitVoteRequest
		require.NoError(t, ParseJSONBody(req, &parsed))
		assert.Equal(t, map[string]int{"sushi": 4}, parsed.Scores)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{invalid}`))

		var parsed models.SubmitVoteRequest
		assert.Error(t, ParseJSONBody(req, &parsed))
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(""))

		var parsed models.SubmitVoteRequest
		assert.Error(t, ParseJSONBody(req, &parsed))
	})
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("handled"))
	})
	corsHandler := CORS(next)

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest("OPTIONS", "/polls", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("regular request passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/polls", nil)
		req.Header.Set("Origin", "https://example.com")
		w := httptest.NewRecorder()

		corsHandler.ServeHTTP(w, req)

		assert.Equal(t, "handled", w.Body.String())
		assert.Equal(t, "https://example.com", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origin defaults to wildcard", func(t *testing.T) {
		w := httptest.NewRecorder()
		corsHandler.ServeHTTP(w, httptest.NewRequest("GET", "/polls", nil))
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestWriteDomainError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound},
		{"permission denied", models.ErrPermissionDenied, http.StatusForbidden},
		{"invalid input", models.ErrInvalidInput, http.StatusBadRequest},
		{"timed out", models.ErrTimedOut, http.StatusConflict},
		{"unauthorized", models.ErrUnauthorized, http.StatusUnauthorized},
		{"wrapped not found", fmt.Errorf("poll lunch: %w", models.ErrNotFound), http.StatusNotFound},
		{
			"duplicate rank",
			&models.DuplicateRankError{Voter: "alice", Algorithm: models.AlgorithmBordat},
			http.StatusUnprocessableEntity,
		},
		{
			"unimplemented algorithm",
			&models.UnimplementedError{Algorithm: models.AlgorithmFrenchSystem},
			http.StatusNotImplemented,
		},
		{
			"storage failure",
			&models.StorageError{Op: "write", Path: "lunch.yml", Err: errors.New("disk full")},
			http.StatusInternalServerError,
		},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteDomainError(w, tc.err)

			assert.Equal(t, tc.statusCode, w.Code)

			var resp models.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, http.StatusText(tc.statusCode), resp.Error)
			if tc.statusCode == http.StatusInternalServerError {
				assert.Equal(t, "internal error", resp.Message)
			}
		})
	}
}
