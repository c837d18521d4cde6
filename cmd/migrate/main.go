package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/campuschain/access-layer/internal/config"
	"github.com/campuschain/access-layer/internal/logger"
	"github.com/campuschain/access-layer/internal/store/schema"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadMigrateConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx := context.Background()

	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "migrate",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)

	logger.InfoCtx(ctx, "Running database migrations",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err))
	}

	err = db.AutoMigrate(
		&schema.Enrollment{},
		&schema.Submission{},
		&schema.Vote{},
		&schema.KeyValueStore{},
	)
	if err != nil {
		logger.FatalCtx(ctx, "Migration failed", zap.Error(err))
	}

	logger.InfoCtx(ctx, "Migrations applied")
}
