package create_booking

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.IdempotencyKey == "" {
		return fmt.Errorf("%w: idempotencyKey is required", ErrInvalidInput)
	}

	if len(req.IdempotencyKey) > domain.MaxIdempotencyKeyLength {
		return fmt.Errorf("%w: idempotencyKey must not exceed %d characters",
			ErrInvalidInput, domain.MaxIdempotencyKeyLength)
	}

	if req.VenueID <= 0 {
		return fmt.Errorf("%w: venueID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.EndTime != nil {
		if err := req.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid endTime format: %v", ErrInvalidInput, err)
		}
		if !req.StartTime.IsBefore(*req.EndTime) {
			return fmt.Errorf("%w: endTime must be after startTime", ErrInvalidInput)
		}
	}

	if req.PartySize < domain.MinPartySize {
		return fmt.Errorf("%w: partySize must be at least %d", ErrInvalidInput, domain.MinPartySize)
	}

	if req.PartySize > domain.MaxPartySize {
		return fmt.Errorf("%w: partySize must not exceed %d", ErrInvalidInput, domain.MaxPartySize)
	}

	if req.GuestName == "" {
		return fmt.Errorf("%w: guestName is required", ErrInvalidInput)
	}

	if len(req.GuestName) > domain.MaxGuestNameLength {
		return fmt.Errorf("%w: guestName must not exceed %d characters",
			ErrInvalidInput, domain.MaxGuestNameLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters",
			ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.ResourceID != nil && *req.ResourceID <= 0 {
		return fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	return nil
}

// resolveDuration вычисляет длительность бронирования в минутах:
// из запрошенного endTime либо из политики заведения
func resolveDuration(req *Request, policy *domain.VenuePolicy) (int, error) {
	if req.EndTime == nil {
		return policy.DefaultDurationMinutes, nil
	}

	duration := req.EndTime.Minutes() - req.StartTime.Minutes()
	if duration < domain.MinDurationMinutes || duration > domain.MaxDurationMinutes {
		return 0, fmt.Errorf("%w: duration must be between %d and %d minutes",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return duration, nil
}

// validateTimeSlot проверяет, что запрошенное время начала является валидным
// кандидатом слота: лежит внутри активной смены по сетке слотов и эффективный
// интервал помещается до конца смены
func validateTimeSlot(
	shifts []*domain.Shift,
	weekday time.Weekday,
	start types.TimeString,
	effectiveDurationMinutes int,
) error {
	startMinutes := start.Minutes()
	open := false

	for _, shift := range shifts {
		if !shift.AppliesTo(weekday) {
			continue
		}
		open = true

		shiftStart := shift.StartTime.Minutes()
		shiftEnd := shift.EndTime.Minutes()

		if startMinutes < shiftStart || startMinutes >= shiftEnd {
			continue
		}
		// Время должно попадать в сетку слотов смены
		if (startMinutes-shiftStart)%domain.SlotGranularityMinutes != 0 {
			continue
		}
		// Эффективный интервал должен поместиться до конца смены
		if startMinutes+effectiveDurationMinutes > shiftEnd {
			continue
		}
		return nil
	}

	if !open {
		return ErrVenueClosed
	}
	return ErrInvalidTimeSlot
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

// findResource ищет активный ресурс по ID среди ресурсов заведения
func findResource(resources []*domain.Resource, resourceID int64) *domain.Resource {
	for _, r := range resources {
		if r.ID == resourceID && r.IsActive {
			return r
		}
	}
	return nil
}
