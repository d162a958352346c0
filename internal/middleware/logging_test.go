package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
)

func TestLogging_PassesResponseThrough(t *testing.T) {
	log := logger.New(t.TempDir())

	wrapped := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("Expected status 418, got %d", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Errorf("Unexpected body: %s", rec.Body.String())
	}
}

func TestLogging_WritesRequestLine(t *testing.T) {
	logDir := t.TempDir()
	log := logger.New(logDir)

	wrapped := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/output/x.jpg", nil))

	content, err := os.ReadFile(filepath.Join(logDir, "info.log"))
	if err != nil {
		t.Fatalf("Failed to read info log: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, "GET /output/x.jpg") || !strings.Contains(line, "404") {
		t.Errorf("Expected request line with method, path and status, got: %s", line)
	}
}

func TestLogging_DefaultStatusIsOK(t *testing.T) {
	logDir := t.TempDir()
	log := logger.New(logDir)

	wrapped := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("implicit 200"))
	}))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	content, err := os.ReadFile(filepath.Join(logDir, "info.log"))
	if err != nil {
		t.Fatalf("Failed to read info log: %v", err)
	}
	if !strings.Contains(string(content), "200") {
		t.Errorf("Expected implicit 200 in log, got: %s", content)
	}
}
