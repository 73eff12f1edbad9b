package get_availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestGenerateCandidateTimes(t *testing.T) {
	shifts := []*domain.Shift{
		{
			StartTime: types.TimeString("11:00"),
			EndTime:   types.TimeString("15:00"),
			Weekdays:  []int{1}, // понедельник
			IsActive:  true,
		},
	}

	// duration=120 + buffer=15: последний помещающийся кандидат 12:45
	candidates := generateCandidateTimes(shifts, time.Monday, 135)

	got := make([]string, 0, len(candidates))
	for _, c := range candidates {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"11:00", "11:30", "12:00", "12:30"}, got)
}

func TestGenerateCandidateTimesWrongWeekday(t *testing.T) {
	shifts := []*domain.Shift{
		{
			StartTime: types.TimeString("11:00"),
			EndTime:   types.TimeString("15:00"),
			Weekdays:  []int{1},
			IsActive:  true,
		},
	}

	candidates := generateCandidateTimes(shifts, time.Sunday, 135)
	assert.Empty(t, candidates)
}

func TestGenerateCandidateTimesInactiveShift(t *testing.T) {
	shifts := []*domain.Shift{
		{
			StartTime: types.TimeString("11:00"),
			EndTime:   types.TimeString("15:00"),
			Weekdays:  []int{1},
			IsActive:  false,
		},
	}

	candidates := generateCandidateTimes(shifts, time.Monday, 135)
	assert.Empty(t, candidates)
}

func TestGenerateCandidateTimesOverlappingShifts(t *testing.T) {
	// Пересекающиеся смены: дубликаты времени схлопываются
	shifts := []*domain.Shift{
		{
			StartTime: types.TimeString("11:00"),
			EndTime:   types.TimeString("14:00"),
			Weekdays:  []int{3},
			IsActive:  true,
		},
		{
			StartTime: types.TimeString("12:00"),
			EndTime:   types.TimeString("16:00"),
			Weekdays:  []int{3},
			IsActive:  true,
		},
	}

	candidates := generateCandidateTimes(shifts, time.Wednesday, 60)

	got := make([]string, 0, len(candidates))
	for _, c := range candidates {
		got = append(got, c.String())
	}
	assert.Equal(t, []string{"11:00", "11:30", "12:00", "12:30", "13:00", "13:30", "14:00", "14:30", "15:00"}, got)
}

func TestBuildSlotsFreeResource(t *testing.T) {
	policy := &domain.VenuePolicy{DefaultDurationMinutes: 120, BufferMinutes: 15}
	resources := []*domain.Resource{
		{ID: 1, Capacity: 2, IsActive: true},
		{ID: 2, Capacity: 4, IsActive: true},
	}
	candidates := []types.TimeString{"11:00", "11:30"}

	slots := buildSlots(candidates, resources, nil, 3, policy)

	require.Len(t, slots, 2)
	for _, slot := range slots {
		assert.True(t, slot.Available)
		// Стол на двоих не попадает в кандидаты для группы из трёх
		assert.Equal(t, []int64{2}, slot.CandidateResourceIDs)
	}
}

func TestBuildSlotsBusyResource(t *testing.T) {
	policy := &domain.VenuePolicy{DefaultDurationMinutes: 120, BufferMinutes: 15}
	resources := []*domain.Resource{
		{ID: 1, Capacity: 4, IsActive: true},
	}
	bookings := []*domain.Booking{
		{
			ResourceID:      ptr.Ptr(int64(1)),
			StartTime:       types.TimeString("12:00"),
			DurationMinutes: 120,
			Status:          domain.StatusConfirmed,
		},
	}
	candidates := []types.TimeString{"11:00", "12:00", "14:30"}

	slots := buildSlots(candidates, resources, bookings, 2, policy)

	require.Len(t, slots, 3)

	// 11:00-13:15 пересекается с 12:00-14:15
	assert.False(t, slots[0].Available)
	// 12:00 занят тем же интервалом
	assert.False(t, slots[1].Available)
	// 14:30 начинается после 14:15 (конец брони с буфером) - свободен
	assert.True(t, slots[2].Available)
	assert.Equal(t, []int64{1}, slots[2].CandidateResourceIDs)
}

func TestBuildSlotsBoundaryIsNotOverlap(t *testing.T) {
	// Бронирование 12:00-14:00 с буфером 0: слот ровно в 14:00 свободен
	policy := &domain.VenuePolicy{DefaultDurationMinutes: 120, BufferMinutes: 0}
	resources := []*domain.Resource{
		{ID: 1, Capacity: 4, IsActive: true},
	}
	bookings := []*domain.Booking{
		{
			ResourceID:      ptr.Ptr(int64(1)),
			StartTime:       types.TimeString("12:00"),
			DurationMinutes: 120,
			Status:          domain.StatusPending,
		},
	}

	slots := buildSlots([]types.TimeString{"14:00"}, resources, bookings, 2, policy)

	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
}

func TestBuildSlotsIgnoresInactiveBookings(t *testing.T) {
	policy := &domain.VenuePolicy{DefaultDurationMinutes: 120, BufferMinutes: 15}
	resources := []*domain.Resource{
		{ID: 1, Capacity: 4, IsActive: true},
	}
	bookings := []*domain.Booking{
		{
			ResourceID:      ptr.Ptr(int64(1)),
			StartTime:       types.TimeString("12:00"),
			DurationMinutes: 120,
			Status:          domain.StatusCancelled,
		},
		{
			// Без назначенного ресурса - конкретный стол не занимает
			ResourceID:      nil,
			StartTime:       types.TimeString("12:00"),
			DurationMinutes: 120,
			Status:          domain.StatusConfirmed,
		},
	}

	slots := buildSlots([]types.TimeString{"12:00"}, resources, bookings, 2, policy)

	require.Len(t, slots, 1)
	assert.True(t, slots[0].Available)
}
