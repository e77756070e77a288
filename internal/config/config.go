package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	databaseName     = "packable"
	testDatabaseName = "packable_test"
)

// Config holds application level configuration loaded from environment variables.
// It is read once at startup and passed explicitly to the components that need it.
type Config struct {
	Env              string
	ServerPort       string
	DatabaseURL      string
	SecretKey        string
	BcryptWorkFactor int
	WeatherBaseURL   string
	WeatherAPIKey    string
	WeatherTimeout   time.Duration
	LogLevel         string
	SwaggerHost      string
	ResetDB          bool
}

// IsTest reports whether the process runs under the test environment.
func (c *Config) IsTest() bool {
	return c.Env == "test"
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")
	isTest := env == "test"

	workFactor := 12
	dbName := databaseName
	if isTest {
		// Speed up hashing in tests; bcrypt silently upgrades anything below MinCost.
		workFactor = bcrypt.MinCost
		dbName = testDatabaseName
	}

	return &Config{
		Env:              env,
		ServerPort:       getEnv("PORT", "3001"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/"+dbName+"?sslmode=disable"),
		SecretKey:        getEnv("SECRET_KEY", "secret-dev"),
		BcryptWorkFactor: getEnvInt("BCRYPT_WORK_FACTOR", workFactor),
		WeatherBaseURL:   getEnv("WEATHER_BASE_URL", "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"),
		WeatherAPIKey:    os.Getenv("VC_API_KEY"),
		WeatherTimeout:   getEnvDuration("WEATHER_TIMEOUT", 10*time.Second),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		SwaggerHost:      os.Getenv("SWAGGER_HOST"),
		ResetDB:          os.Getenv("RESET_DB") == "true",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
