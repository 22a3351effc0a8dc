package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hucklog/ultimate-stats/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	SwaggerEnabled             bool
	UserDirBaseURL             string
	UserDirLookupPath          string
	UserDirAPIKey              string
	UserDirTimeout             time.Duration
	UserDirCircuitEnabled      bool
	UserDirCircuitFailureCount int
	UserDirCircuitOpenTimeout  time.Duration
	UserDirCircuitHalfOpenMax  int
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	InternalJobToken           string
	RecomputeMaxWorkers        int
	LogLevel                   logging.Level
}

// envReader reads typed environment values and remembers the first
// parse failure, so Load can validate in a straight line and report
// one error at the end.
type envReader struct {
	err error
}

func (r *envReader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf(format, args...)
	}
}

func (r *envReader) str(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func (r *envReader) trimmed(key, fallback string) string {
	return strings.TrimSpace(r.str(key, fallback))
}

func (r *envReader) boolean(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	return parsed
}

func (r *envReader) duration(key string, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	return parsed
}

func (r *envReader) positiveDuration(key string, fallback time.Duration) time.Duration {
	parsed := r.duration(key, fallback)
	if parsed <= 0 {
		r.fail("%s must be > 0", key)
		return fallback
	}
	return parsed
}

func (r *envReader) integer(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		r.fail("parse %s: %v", key, err)
		return fallback
	}
	return parsed
}

func (r *envReader) positiveInt(key string, fallback int) int {
	parsed := r.integer(key, fallback)
	if parsed < 1 {
		r.fail("%s must be >= 1", key)
		return fallback
	}
	return parsed
}

func Load() (Config, error) {
	r := &envReader{}

	appEnv, err := parseAppEnv(r.str("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		AppEnv:         appEnv,
		ServiceName:    r.str("APP_SERVICE_NAME", "ultimate-stats-api"),
		ServiceVersion: r.str("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:       r.str("APP_HTTP_ADDR", ":8080"),
		LogLevel:       parseLogLevel(r.str("APP_LOG_LEVEL", "info")),
		ReadTimeout:    r.positiveDuration("APP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout:   r.positiveDuration("APP_WRITE_TIMEOUT", 15*time.Second),

		DBURL:                   r.str("DB_URL", ""),
		DBDisablePreparedBinary: r.boolean("DB_DISABLE_PREPARED_BINARY_RESULT", true),

		CacheEnabled: r.boolean("CACHE_ENABLED", true),
		CacheTTL:     r.positiveDuration("CACHE_TTL", 60*time.Second),

		CORSAllowedOrigins: splitCSV(r.str("CORS_ALLOWED_ORIGINS", "*")),
		SwaggerEnabled:     r.boolean("SWAGGER_ENABLED", appEnv != EnvProd),

		UserDirBaseURL:             r.str("USERDIR_BASE_URL", ""),
		UserDirLookupPath:          r.str("USERDIR_LOOKUP_PATH", "/v1/users"),
		UserDirAPIKey:              r.trimmed("USERDIR_API_KEY", ""),
		UserDirTimeout:             r.positiveDuration("USERDIR_TIMEOUT", 3*time.Second),
		UserDirCircuitEnabled:      r.boolean("USERDIR_CIRCUIT_ENABLED", true),
		UserDirCircuitFailureCount: r.positiveInt("USERDIR_CIRCUIT_FAILURE_COUNT", 5),
		UserDirCircuitOpenTimeout:  r.positiveDuration("USERDIR_CIRCUIT_OPEN_TIMEOUT", 15*time.Second),
		UserDirCircuitHalfOpenMax:  r.positiveInt("USERDIR_CIRCUIT_HALF_OPEN_MAX_REQ", 2),

		UptraceEnabled:     r.boolean("UPTRACE_ENABLED", false),
		UptraceDSN:         r.trimmed("UPTRACE_DSN", ""),
		UptraceLogsEnabled: r.boolean("UPTRACE_LOGS_ENABLED", true),

		PprofEnabled: r.boolean("PPROF_ENABLED", false),
		PprofAddr:    r.trimmed("PPROF_ADDR", ":6060"),

		PyroscopeEnabled:           r.boolean("PYROSCOPE_ENABLED", false),
		PyroscopeServerAddress:     r.trimmed("PYROSCOPE_SERVER_ADDRESS", ""),
		PyroscopeAuthToken:         r.trimmed("PYROSCOPE_AUTH_TOKEN", ""),
		PyroscopeBasicAuthUser:     r.trimmed("PYROSCOPE_BASIC_AUTH_USER", ""),
		PyroscopeBasicAuthPassword: r.trimmed("PYROSCOPE_BASIC_AUTH_PASSWORD", ""),
		PyroscopeUploadRate:        r.positiveDuration("PYROSCOPE_UPLOAD_RATE", 15*time.Second),

		InternalJobToken:    r.trimmed("INTERNAL_JOB_TOKEN", ""),
		RecomputeMaxWorkers: r.positiveInt("RECOMPUTE_MAX_WORKERS", 8),
	}
	cfg.PyroscopeAppName = r.trimmed("PYROSCOPE_APP_NAME", cfg.ServiceName)

	if r.err != nil {
		return Config{}, r.err
	}

	// The Uptrace DSN can also arrive via the standard OTLP headers.
	if cfg.UptraceDSN == "" {
		cfg.UptraceDSN = parseUptraceDSNFromOTLPHeaders(r.str("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}

	switch {
	case cfg.UptraceEnabled && cfg.UptraceDSN == "":
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	case cfg.PprofEnabled && cfg.PprofAddr == "":
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	case cfg.PyroscopeEnabled && cfg.PyroscopeServerAddress == "":
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	case cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "":
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	case len(cfg.CORSAllowedOrigins) == 0:
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// parseUptraceDSNFromOTLPHeaders pulls uptrace-dsn out of a
// comma-separated OTEL_EXPORTER_OTLP_HEADERS value.
func parseUptraceDSNFromOTLPHeaders(raw string) string {
	for _, item := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(key), "uptrace-dsn") {
			return strings.Trim(strings.TrimSpace(value), "\"'")
		}
	}
	return ""
}
