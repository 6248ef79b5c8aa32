package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"clinic-chat/config"
	"clinic-chat/internal/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.AppMode == "debug" {
		logLevel = logger.Info
	}

	var err error
	DB, err = gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get generic database object: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Database connection established")
	return DB, nil
}

func Close() {
	if DB == nil {
		return
	}
	if sqlDB, err := DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func Ping() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

// HealthCheck verifies the connection and that the schema is in place.
func HealthCheck() error {
	if err := Ping(); err != nil {
		return err
	}
	for _, table := range repository.TableNames() {
		exists, err := TableExists(table)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("table %s is missing", table)
		}
	}
	return nil
}

// RunFullMigration creates tables and constraints.
func RunFullMigration() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}
	return repository.InitSchema(DB)
}

func TableExists(table string) (bool, error) {
	return DB.Migrator().HasTable(table), nil
}

func GetTableCount(table string) (int64, error) {
	var count int64
	err := DB.Table(table).Count(&count).Error
	return count, err
}

// DropAllTables removes every table managed by the application.
func DropAllTables() error {
	for _, table := range repository.TableNames() {
		if err := DB.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}
