package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetByVenueWithFilter(_ context.Context, _ domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

type fakeVenueRepo struct {
	venue     *venueRepo.Venue
	venueErr  error
	shifts    []*domain.Shift
	resources []*domain.Resource
	policy    *domain.VenuePolicy
	policyErr error
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

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Понедельник
var testDate = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

func defaultVenueRepo() *fakeVenueRepo {
	return &fakeVenueRepo{
		venue: &venueRepo.Venue{ID: 1, Name: "Тестовый зал"},
		shifts: []*domain.Shift{
			{
				StartTime: types.TimeString("11:00"),
				EndTime:   types.TimeString("15:00"),
				Weekdays:  []int{1},
				IsActive:  true,
			},
		},
		resources: []*domain.Resource{
			{ID: 1, Capacity: 4, IsActive: true},
		},
		policy: &domain.VenuePolicy{
			VenueID:                1,
			DefaultDurationMinutes: 120,
			BufferMinutes:          15,
		},
	}
}

func TestExecuteGeneratesSlotsWithinShift(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, defaultVenueRepo(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 2})
	require.NoError(t, err)

	got := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		got = append(got, s.StartTime.String())
		assert.True(t, s.Available)
	}
	// 13:00 и позже не проходят: эффективный интервал (120+15 минут)
	// не помещается до конца смены 15:00
	assert.Equal(t, []string{"11:00", "11:30", "12:00", "12:30"}, got)
}

func TestExecuteMarksBusySlots(t *testing.T) {
	bookingRepo := &fakeBookingRepo{
		bookings: []*domain.Booking{
			{
				ResourceID:      ptr.Ptr(int64(1)),
				StartTime:       types.TimeString("11:00"),
				DurationMinutes: 120,
				Status:          domain.StatusConfirmed,
			},
		},
	}
	uc := NewUseCase(bookingRepo, defaultVenueRepo(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 2})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)

	// Единственный стол занят 11:00-13:15 (с буфером) - все слоты недоступны
	for _, s := range resp.Slots {
		assert.False(t, s.Available, "slot %s", s.StartTime)
		assert.Empty(t, s.CandidateResourceIDs)
	}
}

func TestExecuteVenueNotFound(t *testing.T) {
	repo := defaultVenueRepo()
	repo.venueErr = venueRepo.ErrVenueNotFound
	uc := NewUseCase(&fakeBookingRepo{}, repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 99, Date: testDate, PartySize: 2})
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestExecutePartyTooLarge(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, defaultVenueRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 10})
	assert.ErrorIs(t, err, ErrPartyTooLarge)
}

func TestExecuteOversizedPartyWithCombinable(t *testing.T) {
	// Негабаритная группа при наличии объединяемых столов: слоты доступны,
	// ресурсы-кандидаты не назначаются - так же такую группу примет создание
	repo := defaultVenueRepo()
	repo.resources = append(repo.resources, &domain.Resource{
		ID: 2, Capacity: 4, Combinable: true, IsActive: true,
	})
	uc := NewUseCase(&fakeBookingRepo{}, repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 10})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 4)
	for _, s := range resp.Slots {
		assert.True(t, s.Available, "slot %s", s.StartTime)
		assert.Empty(t, s.CandidateResourceIDs)
	}
}

func TestExecuteOversizedPartyRequireAssignment(t *testing.T) {
	repo := defaultVenueRepo()
	repo.resources = append(repo.resources, &domain.Resource{
		ID: 2, Capacity: 4, Combinable: true, IsActive: true,
	})
	repo.policy.RequireAssignment = true
	uc := NewUseCase(&fakeBookingRepo{}, repo, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 10})
	assert.ErrorIs(t, err, ErrPartyTooLarge)
}

func TestExecuteNoShiftsOnWeekday(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, defaultVenueRepo(), nopLogger{})

	// Воскресенье: смена действует только по понедельникам
	sunday := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: sunday, PartySize: 2})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecuteFallsBackToDefaultPolicy(t *testing.T) {
	repo := defaultVenueRepo()
	repo.policy = nil
	repo.policyErr = venueRepo.ErrPolicyNotFound
	uc := NewUseCase(&fakeBookingRepo{}, repo, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 2})
	require.NoError(t, err)
	// Дефолтная политика: те же 120+15 минут
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, "11:00", resp.Slots[0].StartTime.String())
}

func TestExecuteValidation(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, defaultVenueRepo(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{VenueID: 0, Date: testDate, PartySize: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: 1, PartySize: 2})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{VenueID: 1, Date: testDate, PartySize: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
