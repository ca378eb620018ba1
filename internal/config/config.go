// File: internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Identity provider names accepted in AUTH_PROVIDER.
const (
	AuthProviderFirebase = "firebase"
	AuthProviderJWT      = "jwt"
)

// Database drivers accepted in DB_DRIVER.
const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Config holds all configuration for the application.
type Config struct {
	// Server Configuration
	GinMode        string        `mapstructure:"GIN_MODE"`
	ServerHost     string        `mapstructure:"SERVER_HOST"`
	ServerPort     string        `mapstructure:"SERVER_PORT"`
	ServerTimeout  time.Duration `mapstructure:"SERVER_TIMEOUT_SECONDS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT_SECONDS"`

	// Database Configuration
	DBDriver          string        `mapstructure:"DB_DRIVER"`
	DBHost            string        `mapstructure:"DB_HOST"`
	DBPort            string        `mapstructure:"DB_PORT"`
	DBUser            string        `mapstructure:"DB_USER"`
	DBPassword        string        `mapstructure:"DB_PASSWORD"`
	DBName            string        `mapstructure:"DB_NAME"`
	DBSSLMode         string        `mapstructure:"DB_SSL_MODE"`
	DBTimezone        string        `mapstructure:"DB_TIMEZONE"`
	DBMaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	DBMaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	DBConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME_MINUTES"`
	DBSource          string        `mapstructure:"DB_SOURCE"`
	DBAutoMigrate     bool          `mapstructure:"DB_AUTO_MIGRATE"`

	// Logging Configuration
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Identity Configuration
	AuthProvider     string        `mapstructure:"AUTH_PROVIDER"`
	IdentityCacheTTL time.Duration `mapstructure:"IDENTITY_CACHE_TTL_SECONDS"`

	// Firebase Configuration
	FirebaseServiceAccountKeyPath string `mapstructure:"FIREBASE_SERVICE_ACCOUNT_KEY_PATH"`
	FirebaseProjectID             string `mapstructure:"FIREBASE_PROJECT_ID"`

	// Development JWT Configuration
	JWTSecret string `mapstructure:"JWT_SECRET"`
	JWTIssuer string `mapstructure:"JWT_ISSUER"`

	// Onboarding
	PostOnboardingRoute string   `mapstructure:"POST_ONBOARDING_ROUTE"`
	CORSAllowedOrigins  []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// Load attempts to load configuration from a .env file (if present) and environment variables.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()

	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_TIMEOUT_SECONDS", 30)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 10)

	v.SetDefault("DB_DRIVER", DBDriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "password")
	v.SetDefault("DB_NAME", "onboarding_db")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME_MINUTES", 60)
	v.SetDefault("DB_SOURCE", "onboarding.db")
	v.SetDefault("DB_AUTO_MIGRATE", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("AUTH_PROVIDER", AuthProviderFirebase)
	v.SetDefault("IDENTITY_CACHE_TTL_SECONDS", 60)
	v.SetDefault("FIREBASE_PROJECT_ID", "") // Optional
	v.SetDefault("FIREBASE_SERVICE_ACCOUNT_KEY_PATH", "")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "onboarding-dev")

	v.SetDefault("POST_ONBOARDING_ROUTE", "/dashboard")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	// Durations are configured as whole seconds/minutes.
	cfg.ServerTimeout = time.Duration(v.GetInt("SERVER_TIMEOUT_SECONDS")) * time.Second
	cfg.RequestTimeout = time.Duration(v.GetInt("REQUEST_TIMEOUT_SECONDS")) * time.Second
	cfg.IdentityCacheTTL = time.Duration(v.GetInt("IDENTITY_CACHE_TTL_SECONDS")) * time.Second
	cfg.DBConnMaxLifetime = time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME_MINUTES")) * time.Minute
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the selected identity provider and database driver are usable.
func (c *Config) Validate() error {
	switch strings.ToLower(c.DBDriver) {
	case DBDriverPostgres, DBDriverSQLite:
	default:
		return fmt.Errorf("FATAL: unsupported DB_DRIVER %q (expected %q or %q)", c.DBDriver, DBDriverPostgres, DBDriverSQLite)
	}

	switch strings.ToLower(c.AuthProvider) {
	case AuthProviderFirebase:
		if strings.TrimSpace(c.FirebaseServiceAccountKeyPath) == "" {
			return fmt.Errorf("FATAL: FIREBASE_SERVICE_ACCOUNT_KEY_PATH is not set. This is required for Firebase Admin SDK initialization")
		}
		if _, err := os.Stat(c.FirebaseServiceAccountKeyPath); os.IsNotExist(err) {
			return fmt.Errorf("FATAL: Firebase service account key file specified in FIREBASE_SERVICE_ACCOUNT_KEY_PATH (%s) not found", c.FirebaseServiceAccountKeyPath)
		}
	case AuthProviderJWT:
		if len(c.JWTSecret) < 16 {
			return fmt.Errorf("FATAL: JWT_SECRET must be at least 16 characters when AUTH_PROVIDER=%s", AuthProviderJWT)
		}
	default:
		return fmt.Errorf("FATAL: unsupported AUTH_PROVIDER %q (expected %q or %q)", c.AuthProvider, AuthProviderFirebase, AuthProviderJWT)
	}
	return nil
}

// ClientConfig configures the terminal onboarding client.
type ClientConfig struct {
	APIBaseURL          string        `mapstructure:"ONBOARD_API_URL"`
	IDToken             string        `mapstructure:"ONBOARD_ID_TOKEN"`
	Timeout             time.Duration `mapstructure:"ONBOARD_TIMEOUT_SECONDS"`
	PostOnboardingRoute string        `mapstructure:"POST_ONBOARDING_ROUTE"`
	LogLevel            string        `mapstructure:"LOG_LEVEL"`
}

// LoadClient loads the terminal client's configuration from .env and the environment.
func LoadClient() (*ClientConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetDefault("ONBOARD_API_URL", "http://localhost:8080")
	v.SetDefault("ONBOARD_ID_TOKEN", "")
	v.SetDefault("ONBOARD_TIMEOUT_SECONDS", 15)
	v.SetDefault("POST_ONBOARDING_ROUTE", "/dashboard")
	v.SetDefault("LOG_LEVEL", "warn")
	v.AutomaticEnv()

	var cfg ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling client configuration: %w", err)
	}
	cfg.Timeout = time.Duration(v.GetInt("ONBOARD_TIMEOUT_SECONDS")) * time.Second
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")
	return &cfg, nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("error loading .env file: %w", err)
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
