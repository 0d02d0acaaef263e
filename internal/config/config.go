package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dgallion1/mdanki/internal/render"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth for the HTTP API; empty disables it.
	APIKey string

	// Upload limits
	MaxUploadBytes int64

	// Logging
	LogLevel  string
	LogFormat string

	// Rendering
	MarkdownExtensions []string
}

func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("MDANKI_API_KEY"),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		LogLevel:  strings.ToLower(envOr("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(envOr("LOG_FORMAT", "json")),

		MarkdownExtensions: envList("MARKDOWN_EXTENSIONS", render.DefaultExtensions),
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}

	return cfg
}

func (c Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or text; got %q", c.LogFormat)
	}
	for _, name := range c.MarkdownExtensions {
		if !render.KnownExtension(name) {
			return fmt.Errorf("MARKDOWN_EXTENSIONS: unknown extension %q (known: %s)",
				name, strings.Join(render.Extensions(), ", "))
		}
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
