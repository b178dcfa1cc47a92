package db

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/festival-benevoles/api/internal/config"
)

func DSN(conf *config.PostgresConfig) string {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		conf.Host, conf.Port, conf.User, conf.Password, conf.DB, conf.SSLMode,
	)
	if conf.StatementTimeout > 0 {
		dsn += fmt.Sprintf(" options='-c statement_timeout=%d'", conf.StatementTimeout.Milliseconds())
	}

	return dsn
}

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	return open(DSN(conf), conf)
}

func OpenPostgresWithURL(url string, conf *config.PostgresConfig) (*gorm.DB, error) {
	return open(url, conf)
}

func open(dsn string, conf *config.PostgresConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("db.DB -> %w", err)
	}
	if conf != nil {
		if conf.MaxOpenConns > 0 {
			sqlDB.SetMaxOpenConns(conf.MaxOpenConns)
		}
		if conf.MaxIdleConns > 0 {
			sqlDB.SetMaxIdleConns(conf.MaxIdleConns)
		}
		if conf.ConnMaxLifetime > 0 {
			sqlDB.SetConnMaxLifetime(conf.ConnMaxLifetime)
		}
	}

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("sqlDB.Ping -> %w", err)
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Error("failed to get sql.DB for closing", zap.Error(err))
		return
	}
	if err = sqlDB.Close(); err != nil {
		zap.L().Error("failed to close database", zap.Error(err))
	}
}
