package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/festival-benevoles/api/internal/config"
	"github.com/festival-benevoles/api/internal/db"
	"github.com/festival-benevoles/api/internal/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "festival-api",
	Short: "Volunteer scheduling backend for board-game festivals",
	// Without a subcommand the API is served.
	RunE:          runServe,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./cmd/app/config.yml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(importCatalogCmd)
	rootCmd.AddCommand(resolveFlexiblesCmd)
}

func Start() error {
	return rootCmd.Execute()
}

// bootstrap loads the configuration, installs the global logger and opens the database.
func bootstrap() (*config.AppConfig, *gorm.DB, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger -> %w", err)
	}

	var postgresDB *gorm.DB
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL, conf.Postgres)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database -> %w", err)
	}

	return conf, postgresDB, nil
}
