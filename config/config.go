package config

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// LoadEnv pulls a local .env into the process environment. Missing file is
// fine in production where the orchestrator injects everything.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file found, using process environment")
	}
}
