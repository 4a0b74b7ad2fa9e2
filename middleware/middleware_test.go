// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/closet-vote/auth"
	"github.com/danielhkuo/closet-vote/models"
	"github.com/danielhkuo/closet-vote/testutil"
)

func TestJSONResponse(t *testing.T) {
	w := httptest.NewRecorder()
	JSONResponse(w, http.StatusCreated, map[string]string{"status": "ok"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", ct)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestErrorResponse(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(w, http.StatusNotFound, "no such image")

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Not Found" {
		t.Errorf("error = %s, want Not Found", resp.Error)
	}
	if resp.Message != "no such image" {
		t.Errorf("message = %s", resp.Message)
	}
	if resp.Code != "" {
		t.Errorf("code = %s, want empty", resp.Code)
	}
}

func TestErrorResponseCode(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponseCode(w, http.StatusConflict, models.CodeDuplicateVote, "you already voted")

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Code != models.CodeDuplicateVote {
		t.Errorf("code = %s, want %s", resp.Code, models.CodeDuplicateVote)
	}
	if resp.Error != "Conflict" {
		t.Errorf("error = %s, want Conflict", resp.Error)
	}
}

func TestParseJSONBody(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ballots", strings.NewReader(`{"voter_name":"Alice"}`))

		var body models.CastBallotRequest
		if err := ParseJSONBody(req, &body); err != nil {
			t.Fatalf("ParseJSONBody() error = %v", err)
		}
		if body.VoterName != "Alice" {
			t.Errorf("voter_name = %s, want Alice", body.VoterName)
		}
	})

	t.Run("malformed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/ballots", strings.NewReader("{broken"))

		var body models.CastBallotRequest
		if err := ParseJSONBody(req, &body); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})
}

func TestRequireOrganizer(t *testing.T) {
	salt := "test-salt"
	called := false
	handler := RequireOrganizer(salt, func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		key            string
		expectedStatus int
	}{
		{"valid key", auth.GenerateOrganizerKey(salt), http.StatusOK},
		{"missing key", "", http.StatusUnauthorized},
		{"wrong key", "not-the-key", http.StatusUnauthorized},
		{"key for other salt", auth.GenerateOrganizerKey("other-salt"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest("POST", "/session/open", nil)
			if tt.key != "" {
				req.Header.Set("X-Organizer-Key", tt.key)
			}
			w := httptest.NewRecorder()
			handler(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			wantCalled := tt.expectedStatus == http.StatusOK
			if called != wantCalled {
				t.Errorf("handler called = %v, want %v", called, wantCalled)
			}
		})
	}
}

func TestWithLogging(t *testing.T) {
	called := false
	handler := WithLogging(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/images", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	if !called {
		t.Error("wrapped handler was not called")
	}
	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", w.Code, http.StatusTeapot)
	}
}

func TestCORS(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := CORS(inner)

	t.Run("normal request gets CORS headers", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/images", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
			t.Errorf("Allow-Origin = %s", got)
		}
		if got := w.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-Organizer-Key") {
			t.Errorf("Allow-Headers = %s, want X-Organizer-Key listed", got)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		reached := false
		h := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		}))

		req := httptest.NewRequest("OPTIONS", "/ballots", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if reached {
			t.Error("preflight should not reach the inner handler")
		}
	})

	t.Run("no origin falls back to wildcard", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/images", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %s, want *", got)
		}
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{"x-forwarded-for single", map[string]string{"X-Forwarded-For": "203.0.113.7"}, "10.0.0.1:1234", "203.0.113.7"},
		{"x-forwarded-for chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"}, "10.0.0.1:1234", "203.0.113.7"},
		{"x-real-ip", map[string]string{"X-Real-IP": "203.0.113.9"}, "10.0.0.1:1234", "203.0.113.9"},
		{"remote addr with port", nil, "192.0.2.5:5678", "192.0.2.5"},
		{"remote addr without port", nil, "192.0.2.5", "192.0.2.5"},
		{"forwarded beats real-ip", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "203.0.113.9"}, "10.0.0.1:1234", "203.0.113.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := GetClientIP(req); got != tt.expected {
				t.Errorf("GetClientIP() = %s, want %s", got, tt.expected)
			}
		})
	}
}
