package env

import (
	"os"
	"strconv"

	"github.com/studora/studora-backend/internal/platform/logger"
)

func Get(key, fallback string, log *logger.Logger) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if log != nil {
		log.Debug("env var missing, using default", "key", key, "default", fallback)
	}
	return fallback
}

func GetInt(key string, fallback int, log *logger.Logger) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		if log != nil {
			log.Debug("env var missing, using default", "key", key, "default", fallback)
		}
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		if log != nil {
			log.Warn("env var not an int, using default", "key", key, "value", v)
		}
		return fallback
	}
	return n
}
