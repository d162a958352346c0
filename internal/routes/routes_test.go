package routes

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/caffeicsatyam/ocean-pulse-api/internal/config"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/detector"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/events"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/logger"
	"github.com/caffeicsatyam/ocean-pulse-api/internal/storage"
)

type stubDetector struct{}

func (stubDetector) Detect(srcPath, outDir string, kind detector.MediaKind) (*detector.Run, error) {
	name := "detected_" + filepath.Base(srcPath)
	if err := os.WriteFile(filepath.Join(outDir, name), []byte("annotated"), 0644); err != nil {
		return nil, err
	}
	return &detector.Run{OutDir: outDir}, nil
}

func (stubDetector) Names() []string {
	return []string{"plastic"}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dir := t.TempDir()
	store, err := storage.New(filepath.Join(dir, "uploads"), filepath.Join(dir, "outputs"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	log := logger.New(filepath.Join(dir, "logs"))
	hub := events.NewHub(log)
	go hub.Run()

	cfg := &config.Config{TemplatePath: filepath.Join(dir, "index.html")}
	if err := os.WriteFile(cfg.TemplatePath, []byte("<html></html>"), 0644); err != nil {
		t.Fatalf("Failed to create template: %v", err)
	}

	return SetupRoutes(store, stubDetector{}, hub, cfg, log)
}

func TestRoutes_Registered(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method   string
		path     string
		expected int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/ui", http.StatusOK},
		{http.MethodGet, "/output/unknown.jpg", http.StatusNotFound},
		{http.MethodGet, "/predict/", http.StatusMethodNotAllowed},
		{http.MethodGet, "/no-such-route", http.StatusNotFound},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
		if rec.Code != tt.expected {
			t.Errorf("%s %s: expected %d, got %d", tt.method, tt.path, tt.expected, rec.Code)
		}
	}
}
