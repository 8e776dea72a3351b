package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	ListenAddr    string
	DBPath        string
	SessionSecret string
	PhotoPath     string
	ClaudeAPIKey  string
	ClaudeModel   string
	BcryptCost    int
	LogLevel      string
	LogFile       string
}

func Load() *Config {
	// A missing .env file is fine; env vars win either way.
	_ = godotenv.Load()

	return &Config{
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
		DBPath:        getEnv("DB_PATH", "/data/foodventory.db"),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		PhotoPath:     getEnv("PHOTO_LOCAL_PATH", "/data/photos"),
		ClaudeAPIKey:  getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:   getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		BcryptCost:    getEnvInt("BCRYPT_COST", bcrypt.DefaultCost),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFile:       getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}
