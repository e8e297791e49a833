package repository

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"blog-service/pkg/config"
	"blog-service/pkg/logger"
)

// Database wraps primary gorm DB instance.
type Database struct {
	Self *gorm.DB
}

// NewDatabase initialises a Database from config.
func NewDatabase(cfg *config.DatabaseConfig) (*Database, error) {
	selfDB, err := initSelfDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &Database{Self: selfDB}, nil
}

// Close closes underlying sql.DB if possible.
func (db *Database) Close() {
	if db == nil || db.Self == nil {
		return
	}
	if sqlDB, err := db.Self.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// AutoMigrate creates or updates tables for the given models.
func (db *Database) AutoMigrate(models ...interface{}) error {
	if err := db.Self.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// dialector picks the gorm driver for cfg.Driver; empty means mysql.
func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := cfg.GetDSN()
	switch strings.ToLower(cfg.Driver) {
	case "", "mysql":
		return mysql.New(mysql.Config{DSN: dsn}), nil
	case "postgres", "postgresql":
		return postgres.New(postgres.Config{DSN: dsn}), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func initSelfDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dial, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dial, &gorm.Config{
		CreateBatchSize:        1000,
		SkipDefaultTransaction: false,
		Logger:                 logger.NewGormLogger(cfg.LogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		sqlDB.SetMaxOpenConns(100)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	} else {
		sqlDB.SetMaxIdleConns(10)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	} else {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	return gormDB, nil
}
