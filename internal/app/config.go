package app

import (
	"time"

	"github.com/prepmitra/currentaffairs-backend/internal/pkg/logger"
	"github.com/prepmitra/currentaffairs-backend/internal/utils"
)

type Config struct {
	JWTSecretKey       string
	AccessTokenTTL     time.Duration
	GenerationCooldown time.Duration
	SeedFile           string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	generationCooldownSeconds := utils.GetEnvAsInt("RECO_GENERATION_COOLDOWN", 600, log)
	seedFile := utils.GetEnv("SEED_FILE", "", log)
	return Config{
		JWTSecretKey:       jwtSecretKey,
		AccessTokenTTL:     time.Duration(accessTokenTTLSeconds) * time.Second,
		GenerationCooldown: time.Duration(generationCooldownSeconds) * time.Second,
		SeedFile:           seedFile,
	}
}
