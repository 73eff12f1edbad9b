package venue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-ReservationService/internal/service/venue/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeVenueRepo struct {
	venue     *venueRepo.Venue
	venueErr  error
	shifts    []*domain.Shift
	resources []*domain.Resource
	policy    *domain.VenuePolicy
	policyErr error
	upserted  *domain.VenuePolicy
}

func (f *fakeVenueRepo) GetVenue(_ context.Context, _ int64) (*venueRepo.Venue, error) {
	if f.venueErr != nil {
		return nil, f.venueErr
	}
	return f.venue, nil
}

func (f *fakeVenueRepo) GetShifts(_ context.Context, _ int64) ([]*domain.Shift, error) {
	return f.shifts, nil
}

func (f *fakeVenueRepo) GetResources(_ context.Context, _ int64) ([]*domain.Resource, error) {
	return f.resources, nil
}

func (f *fakeVenueRepo) GetPolicy(_ context.Context, _ int64) (*domain.VenuePolicy, error) {
	if f.policyErr != nil {
		return nil, f.policyErr
	}
	return f.policy, nil
}

func (f *fakeVenueRepo) UpsertPolicy(_ context.Context, policy *domain.VenuePolicy) (*domain.VenuePolicy, error) {
	f.upserted = policy
	return policy, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func defaultRepo() *fakeVenueRepo {
	return &fakeVenueRepo{
		venue: &venueRepo.Venue{ID: 1, Name: "Тестовый зал"},
		shifts: []*domain.Shift{
			{
				ID:        1,
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("15:00"),
				Weekdays:  []int{1, 2, 3, 4, 5},
				IsActive:  true,
			},
		},
		resources: []*domain.Resource{
			{ID: 1, Name: "Стол 1", Capacity: 4, IsActive: true},
		},
		policy: &domain.VenuePolicy{
			VenueID:                1,
			DefaultDurationMinutes: 120,
			BufferMinutes:          15,
		},
	}
}

func TestGetConfig(t *testing.T) {
	svc := NewService(defaultRepo(), nopLogger{})

	resp, err := svc.GetConfig(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.VenueID)
	assert.Equal(t, "Тестовый зал", resp.Name)
	require.Len(t, resp.Shifts, 1)
	assert.Equal(t, "11:00", resp.Shifts[0].StartTime)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, 4, resp.Resources[0].Capacity)
	assert.Equal(t, 120, resp.Policy.DefaultDurationMinutes)
}

func TestGetConfigVenueNotFound(t *testing.T) {
	repo := defaultRepo()
	repo.venueErr = venueRepo.ErrVenueNotFound
	svc := NewService(repo, nopLogger{})

	_, err := svc.GetConfig(context.Background(), 99)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestGetConfigDefaultsPolicy(t *testing.T) {
	repo := defaultRepo()
	repo.policy = nil
	repo.policyErr = venueRepo.ErrPolicyNotFound
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetConfig(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDurationMinutes, resp.Policy.DefaultDurationMinutes)
	assert.Equal(t, domain.DefaultBufferMinutes, resp.Policy.BufferMinutes)
}

func TestUpdatePolicyPartial(t *testing.T) {
	repo := defaultRepo()
	svc := NewService(repo, nopLogger{})

	resp, err := svc.UpdatePolicy(context.Background(), 1, &models.UpdatePolicyRequest{
		AutoAccept: ptr.Ptr(true),
	})
	require.NoError(t, err)

	// Заполнено только autoAccept: остальные значения сохраняются
	assert.True(t, resp.AutoAccept)
	assert.Equal(t, 120, resp.DefaultDurationMinutes)
	assert.Equal(t, 15, resp.BufferMinutes)
	require.NotNil(t, repo.upserted)
	assert.True(t, repo.upserted.AutoAccept)
}

func TestUpdatePolicyValidation(t *testing.T) {
	svc := NewService(defaultRepo(), nopLogger{})

	_, err := svc.UpdatePolicy(context.Background(), 1, &models.UpdatePolicyRequest{
		DefaultDurationMinutes: ptr.Ptr(5),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.UpdatePolicy(context.Background(), 1, &models.UpdatePolicyRequest{
		BufferMinutes: ptr.Ptr(-1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdatePolicyVenueNotFound(t *testing.T) {
	repo := defaultRepo()
	repo.venueErr = venueRepo.ErrVenueNotFound
	svc := NewService(repo, nopLogger{})

	_, err := svc.UpdatePolicy(context.Background(), 99, &models.UpdatePolicyRequest{})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}
