package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/keelhaven/clientreg/internal/registry/app"
)

func main() {
	// Optional .env for local development. Deployments configure the
	// environment directly, so a missing file is not an error.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
