package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
)

// maxListLimit caps the list_endpoints page size regardless of the
// requested limit.
const maxListLimit = 1000

// serverConfig holds settings configurable via FEATUREGEN_* environment
// variables. The MCP SDK has no initializationOptions, so env vars set in
// the client config are the only channel.
type serverConfig struct {
	// ListLimit is the default page size for list_endpoints.
	ListLimit int
}

var cfg = loadConfig()

func loadConfig() serverConfig {
	return serverConfig{
		ListLimit: envInt("FEATUREGEN_LIST_LIMIT", 100),
	}
}

// envInt parses an integer environment variable, returning fallback when
// unset, unparsable, or not positive.
func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid integer env var, using default",
			"key", key,
			"value", v,
			"default", fallback)
		return fallback
	}
	return n
}
