package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	OCRTimeout         time.Duration
	ImageFetchTimeout  time.Duration
	MaxRequestBodySize int64
	MaxImageSize       int64
	BatchWorkers       int
	SessionTTL         time.Duration
	DictDir            string
	TesseractLang      string
	AzureAccountName   string
	AzureAccountKey    string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AzureConfigured reports whether blob storage credentials were supplied.
func (c *Config) AzureConfigured() bool {
	return c.AzureAccountName != "" && c.AzureAccountKey != ""
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		OCRTimeout:         parseDurationOrDefault("OCR_TIMEOUT", 20*time.Second),
		ImageFetchTimeout:  parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 50*1024*1024), // 50MB, batch uploads
		MaxImageSize:       parseIntOrDefault("MAX_IMAGE_SIZE", 10*1024*1024),        // 10MB per image
		BatchWorkers:       int(parseIntOrDefault("BATCH_WORKERS", 4)),
		SessionTTL:         parseDurationOrDefault("SESSION_TTL", time.Hour),
		DictDir:            getEnvOrDefault("DICT_DIR", "dictionaries"),
		TesseractLang:      getEnvOrDefault("TESSERACT_LANG", "eng"),
		AzureAccountName:   os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureAccountKey:    os.Getenv("AZURE_STORAGE_KEY"),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxImageSize <= 0 || cfg.MaxImageSize > cfg.MaxRequestBodySize {
		return nil, fmt.Errorf("MAX_IMAGE_SIZE must be in (0, MAX_REQUEST_BODY_SIZE] (got %d)", cfg.MaxImageSize)
	}
	if cfg.BatchWorkers <= 0 {
		return nil, fmt.Errorf("BATCH_WORKERS must be > 0 (got %d)", cfg.BatchWorkers)
	}
	if cfg.RequestTimeout <= 0 || cfg.OCRTimeout <= 0 || cfg.ImageFetchTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, ocr=%s, fetch=%s)",
			cfg.RequestTimeout, cfg.OCRTimeout, cfg.ImageFetchTimeout)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
