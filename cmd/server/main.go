package main

import (
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"equitybridge/server/config"
	"equitybridge/server/internal/api"
	"equitybridge/server/internal/cache"
	"equitybridge/server/internal/database"
	"equitybridge/server/internal/valuation"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// .env is optional; deployed environments set variables directly
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	// A broken static table must never serve requests.
	if err := config.ValidateTables(); err != nil {
		logger.WithError(err).Fatal("Static market tables are malformed")
	}

	logger.Infof("Using database at: %s", cfg.Database.Path)
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	gormDB, err := database.NewGormDB(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize estimate store")
	}
	estimates := database.NewEstimateStore(gormDB)

	benchmarks := cache.NewMemoryCache()
	calculator := valuation.NewCalculator(db, benchmarks, logger)

	// New index reports arrive on a monthly cadence; drop the memoized
	// "current" benchmarks on the same schedule.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Cache.RefreshSchedule, func() {
		benchmarks.Clear()
		logger.Info("Cleared benchmark cache")
	}); err != nil {
		logger.WithError(err).Fatal("Invalid cache refresh schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	router.Use(cors.New(corsConfig))

	handler := api.NewHandler(db, estimates, calculator, benchmarks, logger)
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
