package main

import (
	"context"
	"fmt"
	"os"

	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/infrastructure/database"
	"smart-kitchen/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := common.InitLogger(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	store, err := database.Open(cfg.Database)
	if err != nil {
		common.LogFatal("Failed to open database", zap.Error(err))
	}
	defer store.Close()

	inserted, err := store.SeedBasicRecipes(context.Background())
	if err != nil {
		common.LogFatal("Failed to seed recipes", zap.Error(err))
	}
	fmt.Printf("Seeded %d recipes.\n", inserted)
}
