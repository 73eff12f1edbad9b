package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Shift represents a recurring open-hours interval for a venue.
// Weekdays use time.Weekday numbering (0 = Sunday).
// Invariant: StartTime < EndTime.
type Shift struct {
	ID        int64
	VenueID   int64
	StartTime types.TimeString
	EndTime   types.TimeString
	Weekdays  []int
	IsActive  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AppliesTo returns true if the shift is active on the given weekday
func (s *Shift) AppliesTo(weekday time.Weekday) bool {
	if !s.IsActive {
		return false
	}
	for _, wd := range s.Weekdays {
		if wd == int(weekday) {
			return true
		}
	}
	return false
}

// Validate проверяет инварианты смены
func (s *Shift) Validate() error {
	if err := s.StartTime.Validate(); err != nil {
		return err
	}
	if err := s.EndTime.Validate(); err != nil {
		return err
	}
	if !s.StartTime.IsBefore(s.EndTime) {
		return ErrShiftInverted
	}
	for _, wd := range s.Weekdays {
		if wd < 0 || wd > 6 {
			return ErrInvalidWeekday
		}
	}
	return nil
}
