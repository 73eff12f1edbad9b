package get_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	venueService "github.com/m04kA/SMC-ReservationService/internal/service/venue"
)

const (
	msgInvalidVenueID = "некорректный ID заведения"
	msgNotFound       = "заведение не найдено"
)

type Handler struct {
	service VenueService
	logger  Logger
}

func NewHandler(service VenueService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/venues/{venueId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /venues/{id}/config - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	config, err := h.service.GetConfig(r.Context(), venueID)
	if err != nil {
		switch {
		case errors.Is(err, venueService.ErrVenueNotFound):
			h.logger.Warn("GET /venues/{id}/config - Venue not found: venue_id=%d", venueID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /venues/{id}/config - Failed to get config: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /venues/{id}/config - Config retrieved: venue_id=%d", venueID)
	handlers.RespondJSON(w, http.StatusOK, config)
}
