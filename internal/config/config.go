package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultGeocodeBaseURL = "https://us1.api-bdc.net/data/reverse-geocode-client"

// Config is loaded once at startup and passed to the components that need it.
// Nothing mutates it after Load returns.
type Config struct {
	Port                  string
	DatabaseURL           string
	RedisURL              string
	JWTSecret             string        // Secret key for JWT token signing
	JWTTTL                int           // JWT token expiration time in hours
	RegisterResponseDelay time.Duration // Simulated latency before the register response, 0 disables
	GeocodeBaseURL        string
	GeocodeTimeout        time.Duration
	GeocodeCacheTTL       time.Duration
	MaxPageLimit          int
	RateLimitRPS          float64 // Rate limit for general API endpoints (requests per second)
	RateLimitBurst        int     // Burst size for rate limiting
	RateLimitAuthRPS      float64 // Rate limit for register/login (stricter)
	RateLimitAuthBurst    int     // Burst size for register/login
	LogFormat             string  // "json" or "text"
	ShutdownTimeout       time.Duration
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:                  getEnv("PORT", "8080"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		RedisURL:              getEnv("REDIS_URL", ""),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		JWTTTL:                getEnvInt("JWT_TTL_HOURS", 24),
		RegisterResponseDelay: getEnvDuration("REGISTER_RESPONSE_DELAY", 3*time.Second),
		GeocodeBaseURL:        getEnv("GEOCODE_BASE_URL", defaultGeocodeBaseURL),
		GeocodeTimeout:        getEnvDuration("GEOCODE_TIMEOUT", 10*time.Second),
		GeocodeCacheTTL:       getEnvDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		MaxPageLimit:          getEnvInt("MAX_PAGE_LIMIT", 100),
		RateLimitRPS:          getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:      getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst:    getEnvInt("RATE_LIMIT_AUTH_BURST", 10),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		ShutdownTimeout:       getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate reports settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL_HOURS must be positive"))
	}
	if c.MaxPageLimit <= 0 {
		errs = append(errs, errors.New("MAX_PAGE_LIMIT must be positive"))
	}
	if c.RegisterResponseDelay < 0 {
		errs = append(errs, errors.New("REGISTER_RESPONSE_DELAY cannot be negative"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("3s", "1h30m"); a bare integer is read as seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
