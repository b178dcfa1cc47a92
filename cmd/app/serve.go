package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/festival-benevoles/api/internal/api"
	"github.com/festival-benevoles/api/internal/db"
	"github.com/festival-benevoles/api/internal/repository/dao"
	"github.com/festival-benevoles/api/internal/scheduler"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	conf, postgresDB, err := bootstrap()
	if err != nil {
		return err
	}
	defer db.Close(postgresDB)

	if err = dao.InitTables(postgresDB); err != nil {
		return fmt.Errorf("failed to migrate database -> %w", err)
	}

	svcs := api.NewServices(conf, postgresDB)

	var cron *scheduler.Scheduler
	if spec := conf.Scheduler.FlexiblesCron; spec != "" {
		if cron, err = scheduler.New(spec, svcs.Flexible); err != nil {
			return fmt.Errorf("failed to initialize scheduler -> %w", err)
		}
		cron.Start()
		zap.L().Info("flexible resolution scheduled", zap.String("spec", spec))
	}

	s := api.NewServer(conf, svcs)
	srv := &http.Server{
		Addr:              ":" + s.Config.API.Port,
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		zap.L().Info(fmt.Sprintf("starting server at %v", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err = <-serveErr:
		if err != nil {
			return fmt.Errorf("failed to start the server -> %w", err)
		}
	case <-ctx.Done():
		zap.L().Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if cron != nil {
		cron.Stop(shutdownCtx)
	}
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("srv.Shutdown -> %w", err)
	}

	return nil
}
