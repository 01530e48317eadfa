package main

import (
	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/config"
	"github.com/reserfast/reserfast-api/internal/database"
	"github.com/reserfast/reserfast-api/internal/server"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		utils.Logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		utils.Logger.Fatalf("Failed to run migrations: %v", err)
	}

	var admin *database.AdminSeed
	if cfg.AdminUsername != "" && cfg.AdminPassword != "" {
		admin = &database.AdminSeed{Username: cfg.AdminUsername, Password: cfg.AdminPassword}
	}
	if err := database.Seed(database.GetDB(), admin); err != nil {
		utils.Logger.Fatalf("Failed to seed database: %v", err)
	}

	store, err := server.NewSessionStore(cfg)
	if err != nil {
		utils.Logger.Fatalf("Failed to create session store: %v", err)
	}

	r := server.New(server.Deps{
		Config:       cfg,
		DB:           database.GetDB(),
		SessionStore: store,
		Images:       storage.NewLocalStorage(cfg.UploadDir, cfg.MediaURL, cfg.MaxUploadBytes),
	})

	// Start server
	utils.Logger.Infof("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Logger.Fatalf("Failed to start server: %v", err)
	}
}
