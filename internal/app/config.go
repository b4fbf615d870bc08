package app

import (
	"time"

	"github.com/studora/studora-backend/internal/platform/env"
	"github.com/studora/studora-backend/internal/platform/logger"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	AccessTokenTTL time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := env.Get("PORT", "8080", log)
	jwtSecretKey := env.Get("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := env.GetInt("ACCESS_TOKEN_TTL", 3600, log)
	return Config{
		Port:           port,
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
	}
}
