package database

import (
	"fmt"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewGORM opens the PostgreSQL connection pool and verifies it with a ping.
func NewGORM(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBSource), &gorm.Config{
		Logger:      newGormLogger(cfg, logger),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database", zap.String("host", cfg.DBHost), zap.String("name", cfg.DBName))
	return db, nil
}

// AutoMigrate creates or alters the tables for the given models.
func AutoMigrate(db *gorm.DB, logger *zap.Logger, models ...interface{}) error {
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logger.Info("Database schema migrated", zap.Int("models", len(models)))
	return nil
}

// Close closes the GORM database connection.
func Close(db *gorm.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Error getting underlying SQL DB for closing", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
		return
	}
	logger.Info("Database connection closed")
}

func newGormLogger(cfg *config.Config, logger *zap.Logger) gormlogger.Interface {
	var level gormlogger.LogLevel
	switch cfg.LogLevel {
	case "silent", "fatal", "panic":
		level = gormlogger.Silent
	case "error":
		level = gormlogger.Error
	case "debug":
		level = gormlogger.Info
	default:
		level = gormlogger.Warn
	}

	return gormlogger.New(
		zap.NewStdLog(logger.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  cfg.GinMode != "release",
		},
	)
}
