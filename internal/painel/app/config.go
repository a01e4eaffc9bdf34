package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Issuer    string // Issuer claim for access tokens (default: painel-api)
	JWTSecret string // Required: HS256 signing secret

	DatabaseFile string // Path to SQLite database file (default: ./painel.db)
	PepperFile   string // Path to file containing pepper for password hashing (default: ./pepper)

	AccessTokenTTL   time.Duration // Access token lifetime (default: 15m)
	RefreshTokenTTL  time.Duration // Refresh token lifetime (default: 168h)
	MFAChallengeTTL  time.Duration // Window between password and MFA code (default: 5m)
	PasswordResetTTL time.Duration // Password reset token lifetime (default: 1h)

	CookieSecure bool   // Set Secure on cookies; turn off for local HTTP dev
	CookieDomain string // Optional cookie Domain attribute

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; the environment wins when both
	// define a key.
	_ = godotenv.Load()

	return Config{
		Issuer:    getEnvOrDefault("PAINEL_ISSUER", "painel-api"),
		JWTSecret: os.Getenv("PAINEL_JWT_SECRET"),

		DatabaseFile: getEnvOrDefault("PAINEL_DATABASE_FILE", "painel.db"),
		PepperFile:   getEnvOrDefault("PAINEL_PEPPER_FILE", "pepper"),

		AccessTokenTTL:   getEnvDurationOrDefault("PAINEL_ACCESS_TTL", 15*time.Minute),
		RefreshTokenTTL:  getEnvDurationOrDefault("PAINEL_REFRESH_TTL", 7*24*time.Hour),
		MFAChallengeTTL:  getEnvDurationOrDefault("PAINEL_MFA_TTL", 5*time.Minute),
		PasswordResetTTL: getEnvDurationOrDefault("PAINEL_RESET_TTL", time.Hour),

		CookieSecure: getEnvBoolOrDefault("PAINEL_COOKIE_SECURE", true),
		CookieDomain: os.Getenv("PAINEL_COOKIE_DOMAIN"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accept Go durations ("15m", "1h30m") or bare integer minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
