package domain

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusSeated    BookingStatus = "seated"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusNoShow    BookingStatus = "no_show"
)

// statusTransitions закрытая таблица переходов статусов.
// Любой переход, которого здесь нет, запрещён.
// SEATED -> NO_SHOW сознательно отсутствует: no-show фиксируется только до посадки.
var statusTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusSeated, StatusCancelled, StatusNoShow},
	StatusSeated:    {StatusCompleted},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// CanTransitionTo returns true if the transition from s to target is allowed
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from s
func (s BookingStatus) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}

// IsValid returns true if s is a known booking status
func (s BookingStatus) IsValid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// Booking represents a reservation in the system.
// ResourceID is nil until a table is assigned; a booking without a resource
// is persisted anyway and waits for manual assignment.
type Booking struct {
	ID              int64
	VenueID         int64
	ResourceID      *int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int
	Status          BookingStatus

	// Guest contact snapshot, opaque to the engine
	GuestName  string
	GuestPhone *string
	GuestEmail *string
	Notes      *string

	// Ключ идемпотентности создания; уникален среди всех бронирований
	IdempotencyKey string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its resource
// (counts against availability)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusSeated
}

// IsAssigned returns true if a resource has been allocated to the booking
func (b *Booking) IsAssigned() bool {
	return b.ResourceID != nil
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.CanTransitionTo(StatusCancelled)
}

// EndTime возвращает время окончания бронирования без буфера
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// Overlaps проверяет пересечение эффективных интервалов двух бронирований.
// Эффективный интервал полуоткрытый: [start, start + duration + buffer).
// Граничащие интервалы не пересекаются.
func (b *Booking) Overlaps(other *Booking, bufferMinutes int) bool {
	aStart := b.StartTime.Minutes()
	aEnd := aStart + b.DurationMinutes + bufferMinutes
	bStart := other.StartTime.Minutes()
	bEnd := bStart + other.DurationMinutes + bufferMinutes
	return aStart < bEnd && bStart < aEnd
}

// VenueBookingsFilter фильтр для выборки бронирований заведения
type VenueBookingsFilter struct {
	VenueID         int64          // Обязательный параметр
	ResourceID      *int64         // Фильтр по ресурсу (опционально)
	ResourceIDs     []int64        // Фильтр по набору ресурсов (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли завершённые/отменённые бронирования
}
