package domain

import "errors"

// Default policy values
const (
	DefaultDurationMinutes = 120
	DefaultBufferMinutes   = 15
)

// SlotGranularityMinutes фиксированный шаг генерации кандидатов слотов
const SlotGranularityMinutes = 30

// Business validation constants
const (
	MinPartySize                = 1
	MaxPartySize                = 100
	MinDurationMinutes          = 15
	MaxDurationMinutes          = 480 // 8 hours
	MaxGuestNameLength          = 200
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxIdempotencyKeyLength     = 128
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Domain invariant errors
var (
	// ErrShiftInverted возвращается, когда начало смены не раньше её конца
	ErrShiftInverted = errors.New("domain: shift start must be before end")

	// ErrInvalidWeekday возвращается для дня недели вне диапазона 0-6
	ErrInvalidWeekday = errors.New("domain: weekday must be in range 0-6")
)

// ActiveStatuses статусы, при которых бронирование занимает ресурс
// Используются при подсчёте доступности слотов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusSeated,
}

// InactiveStatuses терминальные статусы; такие бронирования не блокируют слоты
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
