// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/closet-vote/auth"
	"github.com/danielhkuo/closet-vote/catalog"
	"github.com/danielhkuo/closet-vote/cliparse"
	"github.com/danielhkuo/closet-vote/voting"
)

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3319,
		Backend:       cliparse.BackendMemory,
		MaxImageWidth: 800,
		OrganizerSalt: "test-organizer-salt",
	}
}

// OrganizerKey returns the organizer key for the test config
func OrganizerKey() string {
	return auth.GenerateOrganizerKey(GetTestConfig().OrganizerSalt)
}

// NewTestState builds a voting state over a fresh in-memory catalog
func NewTestState() *voting.State {
	cfg := GetTestConfig()
	return voting.NewState(catalog.NewMemory(), voting.Options{
		MaxImageWidth:   cfg.MaxImageWidth,
		ResetClosesGate: cfg.ResetClosesGate,
	})
}

// PNG generates a valid PNG of the given dimensions
func PNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}
	return buf.Bytes()
}

// PublishTestImages loads named PNGs into the state (replace mode) and
// fails the test if any are rejected
func PublishTestImages(t *testing.T, state *voting.State, names ...string) {
	t.Helper()

	uploads := make([]catalog.Upload, 0, len(names))
	for _, name := range names {
		uploads = append(uploads, catalog.Upload{Name: name, Data: PNG(t, 100, 80)})
	}
	report, err := state.Publish(context.Background(), uploads, true)
	if err != nil {
		t.Fatalf("Failed to publish test images: %v", err)
	}
	if report.Failed != 0 {
		t.Fatalf("Test image publish had %d failures: %v", report.Failed, report.Errors)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeMultipartRequest creates a multipart upload request with the given
// files under the "images" field
func MakeMultipartRequest(t *testing.T, path string, files map[string][]byte, headers map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, data := range files {
		part, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("Failed to create form file: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("Failed to write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
