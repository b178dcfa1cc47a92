package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/festival-benevoles/api/internal/service"
)

type fakeResolver struct {
	mu    sync.Mutex
	calls []bool
	err   error
}

func (f *fakeResolver) Resolve(_ context.Context, festivalID uint, withZones bool) (service.ResolutionReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, festivalID == 0 && withZones)
	return service.ResolutionReport{RunID: "run"}, f.err
}

func (f *fakeResolver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("not a cron spec", &fakeResolver{})
	assert.Error(t, err)
}

func TestScheduler_ResolvesActiveFestivalWithZones(t *testing.T) {
	resolver := &fakeResolver{}
	s, err := New("@every 1h", resolver)
	require.NoError(t, err)

	s.resolveFlexibles()

	require.Equal(t, 1, resolver.count())
	assert.True(t, resolver.calls[0])
}

func TestScheduler_NoActiveFestivalIsNotFatal(t *testing.T) {
	resolver := &fakeResolver{err: service.ErrNoActiveFestival}
	s, err := New("@every 1h", resolver)
	require.NoError(t, err)

	s.resolveFlexibles()
	resolver.err = errors.New("boom")
	s.resolveFlexibles()

	assert.Equal(t, 2, resolver.count())
}

func TestScheduler_StartStopDoesNotLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	resolver := &fakeResolver{}
	s, err := New("@every 1s", resolver)
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return resolver.count() > 0 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
