package report

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewMemoryRepository(), zerolog.Nop())
}

func validInput() Input {
	return Input{
		Type:        TypeWaterlogging,
		Title:       "Knee-deep water on MG Road",
		Description: "Underpass flooded since last night's rain",
		City:        "Mumbai",
		State:       "Maharashtra",
		Lat:         19.076,
		Lon:         72.8777,
	}
}

func TestService_Submit(t *testing.T) {
	svc := newTestService()

	rep, err := svc.Submit(context.Background(), "user-1", validInput())
	require.NoError(t, err)

	assert.Equal(t, StatusPending, rep.Status)
	assert.Equal(t, SeverityMedium, rep.Severity, "severity defaults to medium")
	assert.Equal(t, "user-1", rep.UserID)
	assert.NotEmpty(t, rep.ID)

	got, err := svc.Get(context.Background(), rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.Title, got.Title)
}

func TestService_Submit_Validation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Type = "earthquake"
	_, err := svc.Submit(ctx, "user-1", in)
	assert.Error(t, err)

	in = validInput()
	in.Title = "  "
	_, err = svc.Submit(ctx, "user-1", in)
	assert.Error(t, err)

	in = validInput()
	in.City = ""
	_, err = svc.Submit(ctx, "user-1", in)
	assert.Error(t, err)

	in = validInput()
	in.Severity = "catastrophic"
	_, err = svc.Submit(ctx, "user-1", in)
	assert.Error(t, err)
}

func TestService_StatusLifecycle(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	rep, err := svc.Submit(ctx, "user-1", validInput())
	require.NoError(t, err)

	// pending -> resolved skips verification and must be rejected.
	_, err = svc.UpdateStatus(ctx, rep.ID, StatusResolved)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	rep, err = svc.UpdateStatus(ctx, rep.ID, StatusVerified)
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, rep.Status)

	rep, err = svc.UpdateStatus(ctx, rep.ID, StatusInProgress)
	require.NoError(t, err)

	rep, err = svc.UpdateStatus(ctx, rep.ID, StatusResolved)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, rep.Status)

	// Resolved is terminal.
	_, err = svc.UpdateStatus(ctx, rep.ID, StatusInProgress)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_ListByCity(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Submit(ctx, "user-1", validInput())
		require.NoError(t, err)
	}
	other := validInput()
	other.City = "Pune"
	_, err := svc.Submit(ctx, "user-2", other)
	require.NoError(t, err)

	result, err := svc.ListByCity(ctx, "mumbai", Filter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Reports, 2, "city matching is case-insensitive and paginated")

	result, err = svc.ListByCity(ctx, "Mumbai", Filter{Status: StatusResolved})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestService_ListByUser(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	_, err := svc.Submit(ctx, "user-1", validInput())
	require.NoError(t, err)
	_, err = svc.Submit(ctx, "user-2", validInput())
	require.NoError(t, err)

	result, err := svc.ListByUser(ctx, "user-1", Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "user-1", result.Reports[0].UserID)
}
