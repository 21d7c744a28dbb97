package config

import (
	"log/slog"

	"github.com/subosito/gotenv"
)

const envDir = "config/envs"

// LoadEnv loads config/envs/.env.<env> into the process environment.
// Values already set in the environment win.
func LoadEnv(env string) {
	envFile := envDir + "/.env." + env
	if err := gotenv.Load(envFile); err != nil {
		slog.Warn("[Config] No .env file found, using OS environment",
			slog.String("file", envFile))
	}
}
