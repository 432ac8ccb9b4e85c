// Package db owns the embedded SQLite store: opening it, applying the schema
// and closing it again.
package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/diewo77/go-facturas/internal/config"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store is an open database handle. It is created once at startup and passed
// to whatever needs it; there is no package level connection.
type Store struct {
	DB  *gorm.DB
	log *zap.Logger
}

// Open creates the parent directory of the database file when needed, opens
// the connection and applies the schema.
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	dsn := DSN(cfg)
	if !IsMemory(dsn) {
		dir := filepath.Dir(filePath(dsn))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", dir, err)
		}
	}

	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if IsMemory(dsn) {
		// a single connection keeps the shared in-memory database alive and
		// avoids table locks between pooled connections
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(gdb); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	log.Info("database ready", zap.String("path", filePath(dsn)))
	return &Store{DB: gdb, log: log}, nil
}

// Ping checks that the database still answers.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	s.log.Debug("closing database")
	return sqlDB.Close()
}
