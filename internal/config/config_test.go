package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.UploadDirectory != "uploads" {
		t.Errorf("Expected default upload dir uploads, got %s", cfg.UploadDirectory)
	}
	if cfg.OutputDirectory != "outputs" {
		t.Errorf("Expected default output dir outputs, got %s", cfg.OutputDirectory)
	}
	if cfg.DetectorWorkers != 1 {
		t.Errorf("Expected default of 1 detector worker, got %d", cfg.DetectorWorkers)
	}
	if cfg.RetentionTTL != 0 {
		t.Errorf("Expected retention disabled by default, got %d", cfg.RetentionTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_DIR", "/tmp/uploads")
	t.Setenv("DETECTOR_WORKERS", "3")
	t.Setenv("RETENTION_TTL_HOURS", "24")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090, got %d", cfg.Port)
	}
	if cfg.UploadDirectory != "/tmp/uploads" {
		t.Errorf("Expected upload dir /tmp/uploads, got %s", cfg.UploadDirectory)
	}
	if cfg.DetectorWorkers != 3 {
		t.Errorf("Expected 3 detector workers, got %d", cfg.DetectorWorkers)
	}
	if cfg.RetentionTTL != 24 {
		t.Errorf("Expected retention TTL 24, got %d", cfg.RetentionTTL)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("Expected fallback to 8080, got %d", cfg.Port)
	}
}
