package main

import (
	"log"

	"github.com/joho/godotenv"

	corecmd "github.com/m3rciful/regbot/core/cmd"
	"github.com/m3rciful/regbot/internal/app"
)

func main() {
	// .env is optional; real deployments pass env vars directly.
	_ = godotenv.Load()

	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "config.yaml",
		LoadConfig:        app.LoadConfig,
		Bootstrap:         app.Bootstrap,
	})
	if err != nil {
		log.Fatalf("bot exited with error: %v", err)
	}
}
