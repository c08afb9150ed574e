package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console and the
// development stub server.
type Config struct {
	App     AppConfig
	API     APIConfig
	Logger  LoggerConfig
	Session SessionConfig
	Demo    DemoConfig
}

// AppConfig controls the stub server's bind address.
type AppConfig struct {
	Name string
	Env  string
	Host string
	Port string
}

// APIConfig points the resource client at the backend.
type APIConfig struct {
	BaseURL                string
	RequestTimeoutSeconds  int
	GenerateTimeoutSeconds int
}

// LoggerConfig configures logging behavior. FilePath routes output to
// a file so the TUI keeps exclusive ownership of the terminal.
type LoggerConfig struct {
	Level    string
	FilePath string
}

// SessionConfig locates the persisted session identity record.
type SessionConfig struct {
	FilePath string
}

// DemoConfig describes the fixed demo identity installed at login and
// the operator identity used for quick replies. A stand-in for a real
// identity-provider exchange, not a security boundary.
type DemoConfig struct {
	UserID     string
	UserEmail  string
	UserName   string
	UserRole   string
	OperatorID string
}

// Load reads configuration from environment variables, applying
// defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	sessionPath := os.Getenv("SESSION_FILE")
	if sessionPath == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve session file location: %w", err)
		}
		sessionPath = filepath.Join(configDir, "helpdesk-console", "session.json")
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "helpdesk-mockd"),
			Env:  getEnv("APP_ENV", "development"),
			Host: getEnv("APP_HOST", "0.0.0.0"),
			Port: getEnv("APP_PORT", "8000"),
		},
		API: APIConfig{
			BaseURL:                getEnv("HELPDESK_API_URL", "http://localhost:8000"),
			RequestTimeoutSeconds:  getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
			GenerateTimeoutSeconds: getEnvAsInt("AI_GENERATE_TIMEOUT_SECONDS", 120),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOG_LEVEL", "info"),
			FilePath: os.Getenv("LOG_FILE"),
		},
		Session: SessionConfig{
			FilePath: sessionPath,
		},
		Demo: DemoConfig{
			UserID:     getEnv("DEMO_USER_ID", "00000000-0000-0000-0000-000000000001"),
			UserEmail:  getEnv("DEMO_USER_EMAIL", "demo@test.com"),
			UserName:   getEnv("DEMO_USER_NAME", "Demo User"),
			UserRole:   getEnv("DEMO_USER_ROLE", "agent"),
			OperatorID: getEnv("OPERATOR_ID", "0850a164-fd7b-42a4-92a4-f89c1971f2fc"),
		},
	}

	return cfg, nil
}

// Addr returns the stub server's bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the per-request deadline for regular calls.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// GenerateTimeout returns the deadline for AI draft generation, which
// runs LLM inference and takes non-trivial latency.
func (a APIConfig) GenerateTimeout() time.Duration {
	if a.GenerateTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.GenerateTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
