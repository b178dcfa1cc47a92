package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API       *APIConfig
	Gin       *GinConfig
	Postgres  *PostgresConfig
	Schedule  *ScheduleConfig
	Scheduler *SchedulerConfig
}

type APIConfig struct {
	Environment        string
	BaseURL            string
	Port               string
	AllowedCORSDomains []string
	JWTSigningKey      string
	JWTTTL             time.Duration
}

type GinConfig struct {
	Mode string
}

type PostgresConfig struct {
	Host             string
	Port             string
	User             string
	Password         string
	DB               string
	SSLMode          string
	StatementTimeout time.Duration
	MaxOpenConns     int
	MaxIdleConns     int
	ConnMaxLifetime  time.Duration
}

// ScheduleConfig holds the ordered day and time-window labels volunteers can sign up for.
type ScheduleConfig struct {
	Jours    []string
	Creneaux []string
}

type SchedulerConfig struct {
	// FlexiblesCron is a cron spec for automatic flexible resolution on the active festival.
	// Empty disables it.
	FlexiblesCron string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.baseURL", "localhost:8080")
	v.SetDefault("api.allowedCORSDomains", []string{"http://localhost:3000"})
	v.SetDefault("api.jwtTTL", "15m")
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.sslMode", "disable")
	v.SetDefault("postgres.statementTimeout", "60s")
	v.SetDefault("postgres.maxOpenConns", 10)
	v.SetDefault("postgres.maxIdleConns", 1)
	v.SetDefault("postgres.connMaxLifetime", "10m")
	v.SetDefault("schedule.jours", []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"})
	v.SetDefault("schedule.creneaux", []string{"8h-10h", "10h-12h", "12h-14h", "14h-16h", "16h-18h", "18h-20h"})
	v.SetDefault("scheduler.flexiblesCron", "")
}

func Load(path string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	conf, err := decode(v)
	if err != nil {
		return nil, err
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		// Changes are only picked up on restart; the pool and router are built once.
		zap.L().Info("config file changed, restart to apply", zap.String("file", e.Name), zap.String("op", e.Op.String()))
	})
	v.WatchConfig()

	return conf, nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	conf := &AppConfig{
		API: &APIConfig{
			Environment:        v.GetString("api.environment"),
			BaseURL:            v.GetString("api.baseURL"),
			Port:               v.GetString("api.port"),
			AllowedCORSDomains: v.GetStringSlice("api.allowedCORSDomains"),
			JWTSigningKey:      v.GetString("api.jwtSigningKey"),
			JWTTTL:             v.GetDuration("api.jwtTTL"),
		},
		Gin: &GinConfig{
			Mode: v.GetString("gin.mode"),
		},
		Postgres: &PostgresConfig{
			Host:             v.GetString("postgres.host"),
			Port:             v.GetString("postgres.port"),
			User:             v.GetString("postgres.user"),
			Password:         v.GetString("postgres.password"),
			DB:               v.GetString("postgres.db"),
			SSLMode:          v.GetString("postgres.sslMode"),
			StatementTimeout: v.GetDuration("postgres.statementTimeout"),
			MaxOpenConns:     v.GetInt("postgres.maxOpenConns"),
			MaxIdleConns:     v.GetInt("postgres.maxIdleConns"),
			ConnMaxLifetime:  v.GetDuration("postgres.connMaxLifetime"),
		},
		Schedule: &ScheduleConfig{
			Jours:    v.GetStringSlice("schedule.jours"),
			Creneaux: v.GetStringSlice("schedule.creneaux"),
		},
		Scheduler: &SchedulerConfig{
			FlexiblesCron: v.GetString("scheduler.flexiblesCron"),
		},
	}

	if conf.API.JWTSigningKey == "" {
		return nil, fmt.Errorf("api.jwtSigningKey is required")
	}
	if len(conf.Schedule.Jours) == 0 || len(conf.Schedule.Creneaux) == 0 {
		return nil, fmt.Errorf("schedule.jours and schedule.creneaux must not be empty")
	}

	return conf, nil
}
