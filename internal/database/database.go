package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/company-directory-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// retryDelay - пауза между попытками подключения
var retryDelay = time.Second

// Open подключается к БД, повторяя попытки, пока она не станет доступна
func Open(cfg config.DatabaseConfig, logger *slog.Logger) (*gorm.DB, error) {
	attempts := max(cfg.ConnectAttempts, 1)

	var (
		db  *gorm.DB
		err error
	)
	for attempt := range attempts {
		if db, err = connect(cfg); err == nil {
			break
		}
		logger.Warn("database is not ready",
			slog.String("driver", cfg.Driver),
			slog.Int("attempt", attempt+1),
			slog.Any("error", err),
		)
		if attempt < attempts-1 {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempts, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// connect открывает пул и проверяет соединение. Пул неудачной попытки закрывается.
func connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(dialector(cfg), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err == nil {
		err = Ping(context.Background(), db)
	}
	if err != nil {
		if db != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
		return nil, err
	}
	return db, nil
}

func dialector(cfg config.DatabaseConfig) gorm.Dialector {
	if cfg.Driver == config.DriverSQLite {
		return sqlite.Open(cfg.DSN())
	}
	return postgres.Open(cfg.DSN())
}

// Ping проверяет доступность БД
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
