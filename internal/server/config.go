package server

import (
	"os"
	"strconv"
)

// Config holds the HTTP server settings read from the environment.
type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int
	DBPath       string
	StateFile    string // when set, saves go to this JSON file instead of DBPath
	Seed         int64
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:       getEnv("SHELFPACK_DB_PATH", "data/shelfpack.db"),
		StateFile:    getEnv("SHELFPACK_STATE_FILE", ""),
		Seed:         int64(getEnvAsInt("SHELFPACK_SEED", 0)),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
