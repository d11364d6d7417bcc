package main

import (
	"flag"

	"outage-notifier/internal/config"
	"outage-notifier/internal/database"
	"outage-notifier/internal/directory"

	"go.uber.org/zap"
)

// Loads the customer CSV into the database, replacing existing rows.
// Required columns: phone, area, account_id. Optional: name.
func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	path := flag.String("csv", cfg.CSVPath, "path to the customers CSV file")
	flag.Parse()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	n, err := directory.ImportCSV(db, *path)
	if err != nil {
		logger.Fatal("import customers", zap.Error(err))
	}
	logger.Info("customers imported", zap.String("csv", *path), zap.Int("count", n))
}
