package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/SebastianBuritica/logistics-ai/internal/app"
	"github.com/SebastianBuritica/logistics-ai/internal/config"
)

func main() {
	// Local development convenience; missing .env is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
