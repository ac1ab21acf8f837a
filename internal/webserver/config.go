package webserver

import (
	"log/slog"
	"os"
	"time"
)

// Config holds the HTTP server settings. Values start from
// DefaultConfig, environment variables override them in LoadConfig, and
// the serve command applies flag overrides on top.
type Config struct {
	// Addr is the listen address in host:port form.
	Addr string

	// ReadTimeout bounds reading one request, including the body.
	ReadTimeout time.Duration

	// WriteTimeout bounds writing one response.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds the graceful drain once the run context
	// ends.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns the built-in server settings.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadConfig reads the server settings from the environment:
//
//   - FEATUREGEN_ADDR: listen address (default ":8080")
//   - FEATUREGEN_READ_TIMEOUT: request read timeout (default "15s")
//   - FEATUREGEN_WRITE_TIMEOUT: response write timeout (default "30s")
//   - FEATUREGEN_SHUTDOWN_TIMEOUT: graceful drain timeout (default "10s")
//
// Unset variables keep the default; invalid values log a warning and
// keep the default.
func LoadConfig() Config {
	def := DefaultConfig()
	return Config{
		Addr:            envString("FEATUREGEN_ADDR", def.Addr),
		ReadTimeout:     envDuration("FEATUREGEN_READ_TIMEOUT", def.ReadTimeout),
		WriteTimeout:    envDuration("FEATUREGEN_WRITE_TIMEOUT", def.WriteTimeout),
		ShutdownTimeout: envDuration("FEATUREGEN_SHUTDOWN_TIMEOUT", def.ShutdownTimeout),
	}
}

// envString returns the environment value for key, or fallback when
// unset or empty.
func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envDuration parses a duration environment variable, returning fallback
// when unset, unparsable, or not positive.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default",
			"key", key,
			"value", v,
			"default", fallback.String())
		return fallback
	}
	return d
}
