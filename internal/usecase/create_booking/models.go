package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	IdempotencyKey string            // Ключ идемпотентности (обязателен)
	VenueID        int64             // ID заведения
	Date           time.Time         // Дата бронирования (без времени)
	StartTime      types.TimeString  // Время начала (например, "18:00")
	EndTime        *types.TimeString // Время окончания; nil = длительность из политики
	PartySize      int               // Размер группы гостей
	ResourceID     *int64            // Явно запрошенный ресурс (опционально)

	// Контактные данные гостя
	GuestName  string
	GuestPhone *string
	GuestEmail *string
	Notes      *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	VenueID         int64
	ResourceID      *int64 // nil = ожидает ручного назначения
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	PartySize       int
	Status          string

	GuestName  string
	GuestPhone *string
	GuestEmail *string
	Notes      *string

	IdempotencyKey string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// toResponse конвертирует domain модель в response
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		VenueID:         b.VenueID,
		ResourceID:      b.ResourceID,
		BookingDate:     b.BookingDate,
		StartTime:       b.StartTime,
		DurationMinutes: b.DurationMinutes,
		PartySize:       b.PartySize,
		Status:          string(b.Status),
		GuestName:       b.GuestName,
		GuestPhone:      b.GuestPhone,
		GuestEmail:      b.GuestEmail,
		Notes:           b.Notes,
		IdempotencyKey:  b.IdempotencyKey,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
