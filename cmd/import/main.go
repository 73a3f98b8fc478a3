package main

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"equitybridge/server/config"
	"equitybridge/server/internal/database"
	"equitybridge/server/internal/importer"
	"equitybridge/server/internal/processor"
	"equitybridge/server/internal/queue"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	filePath := flag.String("file", "", "CSV archive of index observations")
	flag.Parse()
	if *filePath == "" {
		logger.Fatal("-file is required")
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	gormDB, err := database.NewGormDB(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open write connection")
	}

	batchQueue := queue.NewIndexQueue(cfg.Ingestion.QueueSize, logger)
	batchProcessor := processor.NewBatchProcessor(gormDB, batchQueue, cfg, logger)
	batchProcessor.Start()
	batchQueue.Start()

	archiveImporter := importer.NewImporter(batchQueue, cfg.Ingestion.MaxBatchSize, logger)
	queued, err := archiveImporter.ImportFile(*filePath)
	if err != nil {
		logger.WithError(err).Fatal("Import failed")
	}

	// Let the processors drain the queue before shutting down.
	for batchQueue.Len() > 0 {
		time.Sleep(100 * time.Millisecond)
	}
	time.Sleep(250 * time.Millisecond)

	batchQueue.Close()
	batchProcessor.Stop()

	logger.WithField("rows", queued).Info("Import complete")
}
