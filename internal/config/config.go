package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	Port        string
	Origin      string
	Environment string

	// Database is empty when the in-memory store should be used.
	Database DatabaseConfig
	// RedisAddr is empty when checkpoints should stay in process memory.
	RedisAddr     string
	RedisPassword string
	// ThreadTTL bounds how long an idle conversation thread is kept in
	// Redis. Zero keeps threads indefinitely.
	ThreadTTL time.Duration

	// GeminiAPIKey enables the Gemini classifier; when empty the keyword
	// fallback is used.
	GeminiAPIKey      string
	ClassifierTimeout time.Duration

	// WorkflowStepLimit caps node executions per conversation invocation.
	WorkflowStepLimit int
	// SpecialtyFlow enables the symptom-to-specialty sub-flow.
	SpecialtyFlow bool
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	DSN      string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var dbConfig DatabaseConfig
	if name, ok := os.LookupEnv("DB_NAME"); ok {
		dbConfig = DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			Username: getEnv("DB_USERNAME", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     name,
		}
		dbConfig.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			dbConfig.Username, dbConfig.Password, dbConfig.Host, dbConfig.Port, dbConfig.Name)
	}

	stepLimit, err := strconv.Atoi(getEnv("WORKFLOW_STEP_LIMIT", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid WORKFLOW_STEP_LIMIT: %w", err)
	}

	classifierTimeoutSec, err := strconv.Atoi(getEnv("CLASSIFIER_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid CLASSIFIER_TIMEOUT_SECONDS: %w", err)
	}

	threadTTLHours, err := strconv.Atoi(getEnv("THREAD_TTL_HOURS", "24"))
	if err != nil {
		return nil, fmt.Errorf("invalid THREAD_TTL_HOURS: %w", err)
	}

	return &Config{
		Port:              getEnv("PORT", "3001"),
		Origin:            getEnv("ORIGIN", "http://localhost:4200"),
		Environment:       getEnv("APP_ENV", "development"),
		Database:          dbConfig,
		RedisAddr:         getEnv("REDIS_ADDR", ""),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		ThreadTTL:         time.Duration(threadTTLHours) * time.Hour,
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		ClassifierTimeout: time.Duration(classifierTimeoutSec) * time.Second,
		WorkflowStepLimit: stepLimit,
		SpecialtyFlow:     getEnv("SPECIALTY_FLOW", "true") == "true",
	}, nil
}

// Helper function to get environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
