package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/01moynul/ecofind-golang/internal/auth"
	"github.com/01moynul/ecofind-golang/internal/config"
	"github.com/01moynul/ecofind-golang/internal/database"
	"github.com/01moynul/ecofind-golang/internal/handlers"
	"github.com/01moynul/ecofind-golang/internal/logging"
	"github.com/01moynul/ecofind-golang/internal/routes"
	"github.com/01moynul/ecofind-golang/internal/session"
	"github.com/01moynul/ecofind-golang/internal/store"
)

func main() {
	// 0. --- Load Configuration (.env + environment) ---
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// 1. --- Database Connection (migrations applied on open) ---
	db, err := database.OpenDB(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		log.Fatalf("Failed to connect to %s database: %v", cfg.DBDriver, err)
	}
	defer db.Close()

	// 2. --- Sessions ---
	tokens, err := auth.NewTokenIssuer(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to set up session signing: %v", err)
	}
	sessions := session.NewManager(session.NewMemoryStore(), tokens, session.Options{
		CookieName: cfg.SessionCookie,
		TTL:        cfg.SessionTTL,
		Secure:     cfg.CookieSecure,
	})

	// --- Application Setup ---
	app := &handlers.Handlers{
		Store:     store.New(db),
		Sessions:  sessions,
		Log:       log,
		UploadDir: cfg.UploadDir,
		BaseURL:   cfg.BaseURL,
	}

	// --- Router Setup ---
	router, err := routes.SetupRouter(app, routes.Options{CORSAllowedOrigin: cfg.CORSAllowedOrigin})
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	// --- Start Server ---
	log.WithFields(logrus.Fields{"port": cfg.Port, "driver": cfg.DBDriver}).Info("Starting EcoFind server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
