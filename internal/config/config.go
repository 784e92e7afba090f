package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    envOr("APP_PORT", "8080"),             // Application port
		DBUser:     os.Getenv("DB_USER"),                  // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),              // Database password
		DBHost:     envOr("DB_HOST", "127.0.0.1"),         // Database host
		DBPort:     envOr("DB_PORT", "3306"),              // Database port
		DBName:     os.Getenv("DB_NAME"),                  // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),               // JWT secret key
		RedisAddr:  envOr("REDIS_ADDR", "127.0.0.1:6379"), // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),               // Redis password
		RedisDB:    redisDB,                               // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true",        // Is production environment
	}
}

// DSN builds the MySQL Data Source Name from the loaded configuration
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// envOr reads an environment variable with a fallback default
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
