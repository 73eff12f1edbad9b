package bookings

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, fromStatus, toStatus domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, fromStatus domain.BookingStatus, reason string) error
}

// NotifyClient интерфейс клиента сервиса уведомлений
// Вызывается после успешного изменения статуса; ошибки не влияют на результат
type NotifyClient interface {
	BookingStatusChanged(ctx context.Context, booking *domain.Booking, newStatus domain.BookingStatus) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
