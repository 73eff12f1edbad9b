package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error)
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// VenueRepository интерфейс репозитория справочных данных заведения
type VenueRepository interface {
	GetVenue(ctx context.Context, venueID int64) (*venueRepo.Venue, error)
	GetShifts(ctx context.Context, venueID int64) ([]*domain.Shift, error)
	GetResources(ctx context.Context, venueID int64) ([]*domain.Resource, error)
	GetPolicy(ctx context.Context, venueID int64) (*domain.VenuePolicy, error)
}

// NotifyClient интерфейс клиента сервиса уведомлений
// Вызывается после коммита; ошибки не влияют на результат
type NotifyClient interface {
	BookingCreated(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
