// Package databasetest поднимает изолированную БД sqlite в памяти для тестов
package databasetest

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/company-directory-api/internal/config"
	"github.com/company-directory-api/internal/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Logger возвращает логгер, который ничего не пишет
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// New создаёт пустую мигрированную БД, которая закрывается по окончании теста
func New(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(sqlDB, config.DriverSQLite, Logger()))
	return db
}
