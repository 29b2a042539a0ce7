package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"triage-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port                  string
	Env                   string
	CORSAllowOrigin       []string
	TrustedProxies        []string
	LogLevel              string
	LogFormat             string
	RateLimitRPS          float64
	RateLimitBurst        int
	AnalyzeRateLimitRPS   float64
	AnalyzeRateLimitBurst int
	ReadTimeout           time.Duration
	WriteTimeout          time.Duration
	ShutdownTimeout       time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return LoadWith(viper.New())
}

// LoadWith reads configuration through v, so callers can bind flags first.
// Precedence: explicit sets and flags, environment, TRIAGE_CONFIG file, .env files, defaults.
func LoadWith(v *viper.Viper) Config {
	setDefaults(v)

	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(v, ".env", "cmd/.env")

	if path := strings.TrimSpace(os.Getenv("TRIAGE_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.MergeInConfig(); err != nil {
			telemetry.Warn("config.file_unreadable", map[string]any{"path": path, "error": err.Error()})
		}
	}

	v.AutomaticEnv()

	env := normalizeEnv(v.GetString("env"))
	origins := originsFrom(v.Get("cors_allow_origins"))
	if env == "production" && len(origins) == 1 && origins[0] == "*" {
		telemetry.Warn("config.cors_wildcard", map[string]any{"env": env})
	}

	return Config{
		Port:                  v.GetString("port"),
		Env:                   env,
		CORSAllowOrigin:       origins,
		TrustedProxies:        listFrom(v.Get("trusted_proxies")),
		LogLevel:              strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
		LogFormat:             normalizeLogFormat(v.GetString("log_format")),
		RateLimitRPS:          v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:        v.GetInt("rate_limit_burst"),
		AnalyzeRateLimitRPS:   v.GetFloat64("analyze_rate_limit_rps"),
		AnalyzeRateLimitBurst: v.GetInt("analyze_rate_limit_burst"),
		ReadTimeout:           v.GetDuration("read_timeout"),
		WriteTimeout:          v.GetDuration("write_timeout"),
		ShutdownTimeout:       v.GetDuration("shutdown_timeout"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8000")
	v.SetDefault("env", "dev")
	v.SetDefault("cors_allow_origins", "*")
	v.SetDefault("trusted_proxies", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("rate_limit_rps", 20)
	v.SetDefault("rate_limit_burst", 40)
	v.SetDefault("analyze_rate_limit_rps", 5)
	v.SetDefault("analyze_rate_limit_burst", 10)
	v.SetDefault("read_timeout", "15s")
	v.SetDefault("write_timeout", "15s")
	v.SetDefault("shutdown_timeout", "10s")
}

func originsFrom(raw any) []string {
	if raw == nil {
		return []string{"*"}
	}
	return listFrom(raw)
}

// listFrom accepts a comma-separated string or a YAML list.
func listFrom(raw any) []string {
	switch val := raw.(type) {
	case string:
		return splitAndTrim(val)
	case []string:
		return splitAndTrim(strings.Join(val, ","))
	case []any:
		parts := make([]string, 0, len(val))
		for _, p := range val {
			if s, ok := p.(string); ok {
				parts = append(parts, s)
			}
		}
		return splitAndTrim(strings.Join(parts, ","))
	default:
		return nil
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeLogFormat(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "console", "text":
		return "console"
	default:
		return "json"
	}
}
