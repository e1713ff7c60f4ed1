package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/ntvhs/portal-backend/internal/config"
	"github.com/ntvhs/portal-backend/internal/data/repos/content"
	"github.com/ntvhs/portal-backend/internal/domain"
	"github.com/ntvhs/portal-backend/internal/platform/logger"
)

type Service struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(cfg *config.Config, baseLog *logger.Logger) (*Service, error) {
	serviceLog := baseLog.With("service", "PostgresService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &Service{db: db, log: serviceLog}, nil
}

func (s *Service) DB() *gorm.DB { return s.db }

// EnsureDatabase creates the application database when it does not exist
// yet, going through the maintenance database. Safe to call on every start.
func EnsureDatabase(cfg *config.Config, baseLog *logger.Logger) error {
	admin, err := gorm.Open(postgres.Open(cfg.Database.AdminDSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to maintenance database: %w", err)
	}
	defer func() {
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	var exists bool
	err = admin.Raw("SELECT true FROM pg_database WHERE datname = ?", cfg.Database.Name).
		Scan(&exists).Error
	if err != nil {
		return fmt.Errorf("failed to check database existence: %w", err)
	}
	if exists {
		return nil
	}

	baseLog.Info("creating application database", "name", cfg.Database.Name)
	if err := admin.Exec(fmt.Sprintf("CREATE DATABASE %q", cfg.Database.Name)).Error; err != nil {
		return fmt.Errorf("failed to create database %s: %w", cfg.Database.Name, err)
	}
	return nil
}

// AutoMigrateAll creates the six tables. The three assignment collections
// share one model migrated into each of their tables.
func (s *Service) AutoMigrateAll() error {
	s.log.Info("auto migrating tables...")
	for _, kind := range content.Kinds() {
		if err := s.db.Table(kind.Table()).AutoMigrate(&domain.Assignment{}); err != nil {
			return fmt.Errorf("migrate %s: %w", kind.Table(), err)
		}
	}
	return s.db.AutoMigrate(
		&domain.Video{},
		&domain.Book{},
		&domain.AdminSession{},
	)
}
