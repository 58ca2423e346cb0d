package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"sepaku_backend/internals/configs"
)

// ConnectDB opens the pool described by cfg.DB.
// PreferSimpleProtocol keeps it usable behind PgBouncer in transaction mode.
func ConnectDB(cfg configs.Config, log zerolog.Logger) (*gorm.DB, error) {
	log.Info().Str("host", cfg.DB.Host).Str("db", cfg.DB.Name).Msg("connecting to postgres")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DB.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: configs.NewGormLogger(log, cfg.SlowQuery),
	})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	if err := TunePool(db, cfg.DB); err != nil {
		return nil, err
	}
	log.Info().Msg("db connected")
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DBConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("pool tune: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
