package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/mealy-app/backend/internal/server"
	"github.com/mealy-app/backend/internal/server/config"
)

func main() {

	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	app.Run(ctx)
}
