package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-benevoles/api/internal/domain"
)

func TestFlexibleService_ResolveActiveFestival(t *testing.T) {
	ctx := context.Background()
	store := &memInscriptions{}
	_, _, err := store.Apply(ctx, 3, []domain.Inscription{
		posteSignup(7, "Buvette", lundiMatin),
		posteSignup(7, domain.AnimationPoste, lundiMatin),
		zoneSignup(7, zoneA, lundiMatin),
	}, nil)
	require.NoError(t, err)

	svc := NewFlexibleService(store, fakeFestivals{active: domain.Festival{ID: 3}}, firstPicker{})

	report, err := svc.Resolve(ctx, 0, true)
	require.NoError(t, err)
	assert.Equal(t, uint(3), report.FestivalID)
	assert.Equal(t, 1, report.PosteDeleted)
	assert.Equal(t, 1, report.ZoneCascadeDeleted)
	assert.Zero(t, report.ZoneDeleted)
	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)

	again, err := svc.Resolve(ctx, 3, true)
	require.NoError(t, err)
	assert.Zero(t, again.PosteDeleted+again.ZoneCascadeDeleted+again.ZoneDeleted)
	assert.NotEqual(t, report.RunID, again.RunID)
}

func TestFlexibleService_NoActiveFestival(t *testing.T) {
	svc := NewFlexibleService(&memInscriptions{}, fakeFestivals{err: ErrNoActiveFestival}, firstPicker{})

	_, err := svc.Resolve(context.Background(), 0, false)
	assert.ErrorIs(t, err, ErrNoActiveFestival)
}
