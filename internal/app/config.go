package app

import (
	"github.com/prashantttzz/experimentlabs/internal/platform/envutil"
)

type Config struct {
	Port        string
	Environment string
	Version     string
}

func LoadConfig() Config {
	return Config{
		Port:        envutil.String("PORT", "8080"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),
	}
}
