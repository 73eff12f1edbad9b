package get_availability

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByVenueWithFilter(ctx context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error)
}

// VenueRepository интерфейс репозитория справочных данных заведения
type VenueRepository interface {
	GetVenue(ctx context.Context, venueID int64) (*venueRepo.Venue, error)
	GetShifts(ctx context.Context, venueID int64) ([]*domain.Shift, error)
	GetResources(ctx context.Context, venueID int64) ([]*domain.Resource, error)
	GetPolicy(ctx context.Context, venueID int64) (*domain.VenuePolicy, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
