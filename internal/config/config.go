package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultSafetyMultiplier = 3
	defaultProjectionCap    = 1000
)

// Config содержит конфигурацию движка
type Config struct {
	MaxPrincipal         float64
	MaxMonths            int
	MaxRate              float64
	CeilingMultiplier    int
	ProjectionIterations int
	OTELEndpoint         string
	OTELServiceName      string
	LogLevel             string
	LogFormat            string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{
		MaxPrincipal:         getEnvFloat("MAX_PRINCIPAL", 1e9),
		MaxMonths:            getEnvInt("MAX_MONTHS", 600),
		MaxRate:              getEnvFloat("MAX_RATE", 100),
		CeilingMultiplier:    getEnvInt("SAFETY_MULTIPLIER", defaultSafetyMultiplier),
		ProjectionIterations: getEnvInt("PROJECTION_CAP", defaultProjectionCap),
		OTELEndpoint:         getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:      getEnvString("OTEL_SERVICE_NAME", "loan-engine"),
		LogLevel:             getEnvString("LOG_LEVEL", "INFO"),
		LogFormat:            getEnvString("LOG_FORMAT", "json"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
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

// SafetyMultiplier возвращает множитель предельного числа периодов симуляции
func (c *Config) SafetyMultiplier() int {
	if c.CeilingMultiplier <= 0 {
		return defaultSafetyMultiplier
	}
	return c.CeilingMultiplier
}

// ProjectionCap возвращает предел итераций прогноза процентов
func (c *Config) ProjectionCap() int {
	if c.ProjectionIterations <= 0 {
		return defaultProjectionCap
	}
	return c.ProjectionIterations
}
