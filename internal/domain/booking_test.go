package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to seated", StatusPending, StatusSeated, false},
		{"pending to completed", StatusPending, StatusCompleted, false},
		{"confirmed to seated", StatusConfirmed, StatusSeated, true},
		{"confirmed to cancelled", StatusConfirmed, StatusCancelled, true},
		{"confirmed to no_show", StatusConfirmed, StatusNoShow, true},
		{"confirmed to completed", StatusConfirmed, StatusCompleted, false},
		{"seated to completed", StatusSeated, StatusCompleted, true},
		{"seated to cancelled", StatusSeated, StatusCancelled, false},
		{"seated to no_show", StatusSeated, StatusNoShow, false},
		{"seated to pending", StatusSeated, StatusPending, false},
		{"completed is terminal", StatusCompleted, StatusPending, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"no_show is terminal", StatusNoShow, StatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())
	assert.False(t, StatusSeated.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusNoShow.IsTerminal())
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusNoShow.IsValid())
	assert.False(t, BookingStatus("unknown").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingIsActive(t *testing.T) {
	active := []BookingStatus{StatusPending, StatusConfirmed, StatusSeated}
	for _, s := range active {
		b := Booking{Status: s}
		assert.True(t, b.IsActive(), "status %s", s)
	}

	inactive := []BookingStatus{StatusCompleted, StatusCancelled, StatusNoShow}
	for _, s := range inactive {
		b := Booking{Status: s}
		assert.False(t, b.IsActive(), "status %s", s)
	}
}

func TestBookingCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	// Посаженного гостя уже не отменить
	assert.False(t, (&Booking{Status: StatusSeated}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestBookingEndTime(t *testing.T) {
	b := Booking{StartTime: types.TimeString("18:00"), DurationMinutes: 120}
	end, err := b.EndTime()
	require.NoError(t, err)
	assert.Equal(t, "20:00", end.String())
}

func TestBookingOverlaps(t *testing.T) {
	base := &Booking{StartTime: types.TimeString("18:00"), DurationMinutes: 120}

	tests := []struct {
		name     string
		other    *Booking
		buffer   int
		overlaps bool
	}{
		{
			name:     "identical interval",
			other:    &Booking{StartTime: types.TimeString("18:00"), DurationMinutes: 120},
			overlaps: true,
		},
		{
			name:     "partial overlap",
			other:    &Booking{StartTime: types.TimeString("19:00"), DurationMinutes: 120},
			overlaps: true,
		},
		{
			name:     "back to back without buffer",
			other:    &Booking{StartTime: types.TimeString("20:00"), DurationMinutes: 60},
			overlaps: false,
		},
		{
			name:     "back to back with buffer",
			other:    &Booking{StartTime: types.TimeString("20:00"), DurationMinutes: 60},
			buffer:   15,
			overlaps: true,
		},
		{
			name:     "disjoint",
			other:    &Booking{StartTime: types.TimeString("21:00"), DurationMinutes: 60},
			overlaps: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other, tt.buffer))
			// Пересечение симметрично
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base, tt.buffer))
		})
	}
}

func TestShiftAppliesTo(t *testing.T) {
	shift := &Shift{
		StartTime: types.TimeString("11:00"),
		EndTime:   types.TimeString("15:00"),
		Weekdays:  []int{1, 2, 3, 4, 5},
		IsActive:  true,
	}

	assert.True(t, shift.AppliesTo(time.Monday))
	assert.True(t, shift.AppliesTo(time.Friday))
	assert.False(t, shift.AppliesTo(time.Sunday))
	assert.False(t, shift.AppliesTo(time.Saturday))

	shift.IsActive = false
	assert.False(t, shift.AppliesTo(time.Monday))
}

func TestShiftValidate(t *testing.T) {
	valid := &Shift{
		StartTime: types.TimeString("11:00"),
		EndTime:   types.TimeString("15:00"),
		Weekdays:  []int{0, 6},
	}
	require.NoError(t, valid.Validate())

	inverted := &Shift{
		StartTime: types.TimeString("15:00"),
		EndTime:   types.TimeString("11:00"),
	}
	assert.ErrorIs(t, inverted.Validate(), ErrShiftInverted)

	badWeekday := &Shift{
		StartTime: types.TimeString("11:00"),
		EndTime:   types.TimeString("15:00"),
		Weekdays:  []int{7},
	}
	assert.ErrorIs(t, badWeekday.Validate(), ErrInvalidWeekday)
}

func TestResourceCanSeat(t *testing.T) {
	r := &Resource{Capacity: 4, IsActive: true}
	assert.True(t, r.CanSeat(4))
	assert.True(t, r.CanSeat(1))
	assert.False(t, r.CanSeat(5))

	r.IsActive = false
	assert.False(t, r.CanSeat(2))
}

func TestMaxCapacity(t *testing.T) {
	resources := []*Resource{
		{Capacity: 2, IsActive: true},
		{Capacity: 8, IsActive: false},
		{Capacity: 6, IsActive: true},
	}
	// Неактивные ресурсы не учитываются
	assert.Equal(t, 6, MaxCapacity(resources))
	assert.Equal(t, 0, MaxCapacity(nil))
}

func TestVenuePolicy(t *testing.T) {
	p := &VenuePolicy{DefaultDurationMinutes: 120, BufferMinutes: 15}
	assert.Equal(t, 135, p.EffectiveDurationMinutes())
	assert.Equal(t, StatusPending, p.InitialStatus())

	p.AutoAccept = true
	assert.Equal(t, StatusConfirmed, p.InitialStatus())

	def := DefaultPolicy(7)
	assert.Equal(t, int64(7), def.VenueID)
	assert.Equal(t, DefaultDurationMinutes, def.DefaultDurationMinutes)
	assert.Equal(t, DefaultBufferMinutes, def.BufferMinutes)
	assert.False(t, def.AutoAccept)
}
