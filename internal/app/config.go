package app

import (
	"github.com/eventdesk/eventdesk-backend/internal/platform/envutil"
	"github.com/eventdesk/eventdesk-backend/internal/platform/logger"
)

type Config struct {
	JWTSecretKey string
	Environment  string
	Version      string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.Str("JWT_SECRET_KEY", "defaultsecret")
	if jwtSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	return Config{
		JWTSecretKey: jwtSecretKey,
		Environment:  envutil.Str("APP_ENV", "development"),
		Version:      envutil.Str("APP_VERSION", "dev"),
	}
}
