package get_venue_config

import (
	"context"

	"github.com/m04kA/SMC-ReservationService/internal/service/venue/models"
)

type VenueService interface {
	GetConfig(ctx context.Context, venueID int64) (*models.VenueConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
