package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/festival-benevoles/api/internal/service"
)

const runTimeout = 4 * time.Minute

type FlexibleResolver interface {
	Resolve(ctx context.Context, festivalID uint, withZones bool) (service.ResolutionReport, error)
}

// Scheduler periodically resolves flexible sign-ups of the active festival.
type Scheduler struct {
	cron     *cron.Cron
	resolver FlexibleResolver
}

func New(spec string, resolver FlexibleResolver) (*Scheduler, error) {
	logger := cron.PrintfLogger(zap.NewStdLog(zap.L().Named("cron")))

	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(logger), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger))),
		resolver: resolver,
	}

	if _, err := s.cron.AddFunc(spec, s.resolveFlexibles); err != nil {
		return nil, fmt.Errorf("s.cron.AddFunc(%q) -> %w", spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop prevents new runs and waits for a running one, or for ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) resolveFlexibles() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	report, err := s.resolver.Resolve(ctx, 0, true)
	if err != nil {
		if errors.Is(err, service.ErrNoActiveFestival) {
			zap.L().Info("scheduled flexible resolution skipped, no active festival")
			return
		}

		zap.L().Error("scheduled flexible resolution failed", zap.Error(err))
		return
	}

	zap.L().Info("scheduled flexible resolution done", zap.String("run_id", report.RunID))
}
