package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv             string
	Port               string
	CORSAllowedOrigins []string

	// Pricing knobs. Defaults reproduce the storefront's quote math.
	ContractorDiscountRate float64
	TaxRate                float64
	DeliveryFee            float64
	FreeDeliveryThreshold  float64

	CartTTL         time.Duration
	NotificationTTL time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration
	MaxBodyBytes    int64

	SecurityHeadersEnabled bool

	LogFormat        string
	LogLevel         string
	MetricsNamespace string
	MetricsEnabled   bool

	TracingEnabled       bool
	TracingEndpoint      string
	TracingSamplingRatio float64
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		AppEnv:             valueOrDefault(k.String("APP_ENV"), "development"),
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),

		ContractorDiscountRate: parseFloat(k.String("PRICING_CONTRACTOR_DISCOUNT"), 0.15),
		TaxRate:                parseFloat(k.String("PRICING_TAX_RATE"), 0.0825),
		DeliveryFee:            parseFloat(k.String("PRICING_DELIVERY_FEE"), 75),
		FreeDeliveryThreshold:  parseFloat(k.String("PRICING_FREE_DELIVERY_THRESHOLD"), 500),

		CartTTL:         parseDuration(k.String("CART_TTL"), "24h"),
		NotificationTTL: parseDuration(k.String("NOTIFICATION_TTL"), "4s"),

		RateLimitMax:    parseInt(k.String("RATE_LIMIT_MAX"), 120),
		RateLimitWindow: parseDuration(k.String("RATE_LIMIT_WINDOW"), "1m"),
		MaxBodyBytes:    int64(parseInt(k.String("MAX_BODY_BYTES"), 1<<20)),

		SecurityHeadersEnabled: parseBool(valueOrDefault(k.String("SECURITY_HEADERS_ENABLED"), "true")),

		LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsNamespace: valueOrDefault(k.String("OBS_METRICS_NAMESPACE"), "vellum"),
		MetricsEnabled:   parseBool(valueOrDefault(k.String("OBS_ENABLE_PROMETHEUS"), "true")),

		TracingEnabled:       parseBool(k.String("OBS_ENABLE_TRACING")),
		TracingEndpoint:      strings.TrimSpace(k.String("OBS_OTLP_ENDPOINT")),
		TracingSamplingRatio: parseFloat(k.String("OBS_TRACING_SAMPLING_RATIO"), 1.0),
	}

	if cfg.ContractorDiscountRate < 0 || cfg.ContractorDiscountRate >= 1 {
		return nil, fmt.Errorf("PRICING_CONTRACTOR_DISCOUNT must be in [0, 1): %v", cfg.ContractorDiscountRate)
	}
	if cfg.TaxRate < 0 {
		return nil, fmt.Errorf("PRICING_TAX_RATE must not be negative: %v", cfg.TaxRate)
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = 4 * time.Second
	}

	return cfg, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(strings.TrimSpace(c.AppEnv), "development")
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseFloat(value string, fallback float64) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseInt(value string, fallback int) int {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fallback
	}
	return n
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// MustLoad behaves like Load but panics on error. Useful for tests and command entrypoints.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(vars map[string]string) (*Config, error) {
	original := make(map[string]string, len(vars))
	for key := range vars {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, vars[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
