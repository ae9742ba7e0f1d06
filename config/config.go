package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAuthTokenPlaceholder is the value shipped in .env.example. A secret
// left at this value counts as unconfigured.
const DefaultAuthTokenPlaceholder = "your_token_here"

type Config struct {
	DBPath string

	RedisAddr     string
	RedisPort     string
	RedisPassword string

	// Shared secrets. Read through AuthToken / AdminSecret, which apply the
	// unconfigured/placeholder sentinel rules.
	RawAuthToken   string
	RawAdminSecret string

	// Log configuration
	LogLevel      string
	LogFilename   string
	LogMaxSize    int
	LogMaxBackups int
	LogMaxAge     int
	LogCompress   bool
}

func (c *Config) RedisFullAddr() string {
	return c.RedisAddr + ":" + c.RedisPort
}

// AuthToken returns the API bearer secret. ok is false when the token is
// unset, blank, or still the placeholder; the API must then fail closed with
// a not-configured status rather than accept or reject credentials.
func (c *Config) AuthToken() (token string, ok bool) {
	token = strings.TrimSpace(c.RawAuthToken)
	if token == "" || token == DefaultAuthTokenPlaceholder {
		return "", false
	}
	return token, true
}

// AdminSecret returns the TOTP seed for admin login. Same sentinel rules as
// AuthToken.
func (c *Config) AdminSecret() (secret string, ok bool) {
	secret = strings.TrimSpace(c.RawAdminSecret)
	if secret == "" || secret == DefaultAuthTokenPlaceholder {
		return "", false
	}
	return secret, true
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		// Ignore error if .env file is not found
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	return &Config{
		DBPath: getEnv("DB_PATH", "promptdoc.db"),

		RedisAddr:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		RawAuthToken:   os.Getenv("AUTH_TOKEN"),
		RawAdminSecret: os.Getenv("ADMIN_TOTP_SECRET"),

		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFilename:   getEnv("LOG_FILENAME", "logs/app.log"),
		LogMaxSize:    getEnvAsInt("LOG_MAX_SIZE", 100),
		LogMaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		LogMaxAge:     getEnvAsInt("LOG_MAX_AGE", 28),
		LogCompress:   getEnvAsBool("LOG_COMPRESS", true),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.Atoi(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if valueStr, exists := os.LookupEnv(key); exists {
		if value, err := strconv.ParseBool(valueStr); err == nil {
			return value
		}
	}
	return defaultValue
}
