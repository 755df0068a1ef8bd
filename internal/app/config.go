package app

import (
	"github.com/teamwear/weatherfit-backend/internal/logger"
	"github.com/teamwear/weatherfit-backend/internal/utils"
)

type Config struct {
	Port          string
	DefaultRegion string
	CandidatePool int
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:          utils.GetEnv("PORT", "8080", log),
		DefaultRegion: utils.GetEnv("DEFAULT_REGION", "seoul", log),
		CandidatePool: utils.GetEnvAsInt("CANDIDATE_POOL_SIZE", 50, log),
	}
}
