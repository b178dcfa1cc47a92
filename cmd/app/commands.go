package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/festival-benevoles/api/internal/api"
	"github.com/festival-benevoles/api/internal/db"
	"github.com/festival-benevoles/api/internal/repository/dao"
	"github.com/festival-benevoles/api/internal/service"
)

var (
	festivalID uint
	withZones  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and seed roles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, postgresDB, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(postgresDB)

		if err = dao.InitTables(postgresDB); err != nil {
			return fmt.Errorf("dao.InitTables -> %w", err)
		}

		zap.L().Info("database migrated")
		return nil
	},
}

var importCatalogCmd = &cobra.Command{
	Use:   "import-catalog <file.csv>",
	Short: "Replace a festival's game catalog and reconcile zone sign-ups",
	Long: `Replace a festival's game catalog from a semicolon separated file.
Zone sign-ups whose zone disappeared are deleted, the others get the new zone name.
Without --festival the active festival is used.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("os.Open -> %w", err)
		}
		defer file.Close()

		games, err := service.ParseCatalog(file)
		if err != nil {
			return err
		}

		conf, postgresDB, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(postgresDB)

		report, err := api.NewServices(conf, postgresDB).Catalog.Import(cmd.Context(), festivalID, games)
		if err != nil {
			return fmt.Errorf("Catalog.Import -> %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "festival %d: %d games, %d sign-ups retained, %d renamed, %d deleted\n",
			report.FestivalID, report.Games, report.Retained, report.Renamed, report.Deleted)
		return nil
	},
}

var resolveFlexiblesCmd = &cobra.Command{
	Use:   "resolve-flexibles",
	Short: "Keep one poste and one zone per volunteer and slot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		conf, postgresDB, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(postgresDB)

		report, err := api.NewServices(conf, postgresDB).Flexible.Resolve(cmd.Context(), festivalID, withZones)
		if err != nil {
			return fmt.Errorf("Flexible.Resolve -> %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "run %s on festival %d: %d poste, %d cascaded zone and %d zone sign-ups deleted\n",
			report.RunID, report.FestivalID, report.PosteDeleted, report.ZoneCascadeDeleted, report.ZoneDeleted)
		return nil
	},
}

func init() {
	importCatalogCmd.Flags().UintVarP(&festivalID, "festival", "f", 0, "Festival id (default: the active festival)")
	resolveFlexiblesCmd.Flags().UintVarP(&festivalID, "festival", "f", 0, "Festival id (default: the active festival)")
	resolveFlexiblesCmd.Flags().BoolVar(&withZones, "zones", true, "Also resolve zone-level sign-ups (--zones=false for postes only)")
}
