package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/sun-detect-mcp/internal/detection"
	"github.com/ironsheep/sun-detect-mcp/internal/imaging"
)

// Config holds the runtime settings of the server. Every field can be set
// through the environment; an optional .env file is loaded by the binary
// before Load runs.
type Config struct {
	LogLevel     string
	HTTPAddr     string
	JPEGQuality  int
	BodyLimitMB  int
	CacheSize    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BoxColor     string
	MarkerColor  string
	Label        string
}

// Load reads the configuration from the environment, using defaults for
// unset or unparsable values.
func Load() *Config {
	return &Config{
		LogLevel:     strings.ToLower(getEnv("SUN_DETECT_LOG_LEVEL", "info")),
		HTTPAddr:     getEnv("SUN_DETECT_HTTP_ADDR", ":5000"),
		JPEGQuality:  getEnvAsInt("SUN_DETECT_JPEG_QUALITY", imaging.DefaultJPEGQuality),
		BodyLimitMB:  getEnvAsInt("SUN_DETECT_BODY_LIMIT_MB", 20),
		CacheSize:    getEnvAsInt("SUN_DETECT_CACHE_SIZE", imaging.DefaultCacheSize),
		ReadTimeout:  time.Duration(getEnvAsInt("SUN_DETECT_READ_TIMEOUT_SEC", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("SUN_DETECT_WRITE_TIMEOUT_SEC", 30)) * time.Second,
		BoxColor:     getEnv("SUN_DETECT_BOX_COLOR", "#FFFF00"),
		MarkerColor:  getEnv("SUN_DETECT_MARKER_COLOR", "#FF0000"),
		Label:        getEnv("SUN_DETECT_LABEL", "Sun Detected"),
	}
}

// Debug reports whether verbose logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// BodyLimit returns the maximum accepted request body in bytes.
func (c *Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 20 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// DetectOptions builds the annotation style from the configured colors and
// label.
func (c *Config) DetectOptions() (detection.Options, error) {
	opts := detection.DefaultOptions()

	box, err := imaging.ParseColor(c.BoxColor)
	if err != nil {
		return opts, fmt.Errorf("SUN_DETECT_BOX_COLOR: %w", err)
	}
	marker, err := imaging.ParseColor(c.MarkerColor)
	if err != nil {
		return opts, fmt.Errorf("SUN_DETECT_MARKER_COLOR: %w", err)
	}

	opts.BoxColor = box
	opts.MarkerColor = marker
	opts.Label = c.Label
	return opts, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
