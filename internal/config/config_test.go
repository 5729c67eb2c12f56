package config

import (
	"testing"
	"time"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"HOST", "PORT", "REQUEST_TIMEOUT", "OCR_TIMEOUT", "IMAGE_FETCH_TIMEOUT",
		"MAX_REQUEST_BODY_SIZE", "MAX_IMAGE_SIZE", "BATCH_WORKERS", "SESSION_TTL",
		"DICT_DIR", "TESSERACT_LANG", "AZURE_STORAGE_ACCOUNT", "AZURE_STORAGE_KEY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.BatchWorkers != 4 {
		t.Errorf("expected 4 batch workers, got %d", cfg.BatchWorkers)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("expected 1h session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.MaxImageSize != 10*1024*1024 {
		t.Errorf("expected 10MB image limit, got %d", cfg.MaxImageSize)
	}
	if cfg.AzureConfigured() {
		t.Error("Azure should not be configured without credentials")
	}
	if got := cfg.ServerAddress(); got != "0.0.0.0:8080" {
		t.Errorf("expected 0.0.0.0:8080, got %q", got)
	}
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("BATCH_WORKERS", "8")
	t.Setenv("OCR_TIMEOUT", "45s")
	t.Setenv("AZURE_STORAGE_ACCOUNT", "images")
	t.Setenv("AZURE_STORAGE_KEY", "c2VjcmV0")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.BatchWorkers != 8 {
		t.Errorf("expected 8 batch workers, got %d", cfg.BatchWorkers)
	}
	if cfg.OCRTimeout != 45*time.Second {
		t.Errorf("expected 45s OCR timeout, got %s", cfg.OCRTimeout)
	}
	if !cfg.AzureConfigured() {
		t.Error("Azure should be configured")
	}
}

func TestLoadFromEnvInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "PORT", "http"},
		{"port out of range", "PORT", "70000"},
		{"image larger than body limit", "MAX_IMAGE_SIZE", "999999999999"},
		{"negative body size", "MAX_REQUEST_BODY_SIZE", "-1"},
		{"zero workers", "BATCH_WORKERS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("expected error for %s=%s", tt.key, tt.value)
			}
		})
	}
}
