package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/uploadhub/uploadhub/config"
	"github.com/uploadhub/uploadhub/controller"
	"github.com/uploadhub/uploadhub/hub"
	"github.com/uploadhub/uploadhub/infra"
	"github.com/uploadhub/uploadhub/provider"
	"github.com/uploadhub/uploadhub/repository"
	routes "github.com/uploadhub/uploadhub/route"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, continuing with environment variables")
	}

	cfg := config.NewConfig()
	ctx := context.Background()

	telemetry, err := infra.InitTelemetry(ctx, cfg.EnvConfig)
	if err != nil {
		log.Printf("Telemetry disabled: %v", err)
	} else {
		defer telemetry.Shutdown(ctx)
	}

	inf := infra.InitInfra(cfg)
	prov := provider.InitProvider(cfg, inf)
	repo := repository.InitRepository(inf)

	if cfg.EnvConfig.Environment.Mode == "development" {
		if err := repo.Seed(ctx); err != nil {
			inf.Logger.ErrorWithContextf(ctx, err, "[Main] Failed to seed database")
		}
	}

	groupHub := hub.NewGroupHub(inf.Logger)
	ctrl := controller.NewController(cfg, inf, prov, repo, groupHub)

	router := routes.SetupRouter(ctrl)
	if err := router.Run(":" + cfg.EnvConfig.HTTPPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
