package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvAPIKey     = "WELFARE_API_KEY"
	EnvBaseURL    = "CENTRAL_LIST_URL"
	EnvListenAddr = "WELFARE_LISTEN_ADDR"
	EnvLogLevel   = "WELFARE_LOG_LEVEL"
	EnvLogFile    = "WELFARE_LOG_FILE"
	EnvExportDir  = "WELFARE_EXPORT_DIR"
	EnvMaxRPS     = "WELFARE_MAX_RPS"
)

// Config holds everything the lookup needs from the environment.
type Config struct {
	APIKey     string  // Decoded service key
	BaseURL    string  // List endpoint of the central welfare service API
	ListenAddr string  // Address the web form listens on
	LogLevel   string  // zerolog level name
	LogFile    string  // Optional rotated log file
	ExportDir  string  // Base directory for CLI exports
	MaxRPS     float64 // Outbound requests per second, 0 means unlimited
}

// MissingConfigError is returned when a required value is unset or empty.
type MissingConfigError struct {
	Names []string
}

func (e *MissingConfigError) Error() string {
	return fmt.Sprintf("missing required configuration: %s (set it in the environment or a .env file)",
		strings.Join(e.Names, ", "))
}

// LoadDotEnv loads .env files into the environment without overriding existing variables.
// It reports whether a file was loaded.
func LoadDotEnv(filenames ...string) bool {
	return godotenv.Load(filenames...) == nil
}

// Load resolves the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom resolves the configuration using getenv for lookups.
func LoadFrom(getenv func(string) string) (*Config, error) {
	rawKey := strings.TrimSpace(getenv(EnvAPIKey))
	baseURL := strings.TrimSpace(getenv(EnvBaseURL))

	var missing []string
	if rawKey == "" {
		missing = append(missing, EnvAPIKey)
	}
	if baseURL == "" {
		missing = append(missing, EnvBaseURL)
	}
	if len(missing) > 0 {
		return nil, &MissingConfigError{Names: missing}
	}

	cfg := &Config{
		APIKey:     decodeKey(rawKey),
		BaseURL:    baseURL,
		ListenAddr: valueOrDefault(getenv(EnvListenAddr), ":8080"),
		LogLevel:   valueOrDefault(getenv(EnvLogLevel), "info"),
		LogFile:    getenv(EnvLogFile),
		ExportDir:  valueOrDefault(getenv(EnvExportDir), "output"),
	}

	if v := getenv(EnvMaxRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil || rps < 0 {
			return nil, fmt.Errorf("invalid %s %q: must be a non-negative number", EnvMaxRPS, v)
		}
		cfg.MaxRPS = rps
	}

	return cfg, nil
}

// decodeKey percent-decodes the service key as it is published in encoded form.
// A key that does not decode is used verbatim.
func decodeKey(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

func valueOrDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}
