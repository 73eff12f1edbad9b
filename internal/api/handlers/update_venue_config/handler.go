package update_venue_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/api/middleware"
	venueService "github.com/m04kA/SMC-ReservationService/internal/service/venue"
	"github.com/m04kA/SMC-ReservationService/internal/service/venue/models"
)

const (
	msgInvalidVenueID     = "некорректный ID заведения"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "заведение не найдено"
	msgInvalidData        = "некорректные данные политики"
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

// Handle PUT /api/v1/venues/{venueId}/config
// Обновляет политику бронирования; смены и ресурсы управляются отдельным
// административным контуром
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем venueId из URL
	vars := mux.Vars(r)
	venueIDStr := vars["venueId"]

	venueID, err := strconv.ParseInt(venueIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid venue ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVenueID)
		return
	}

	// Декодируем body
	var req models.UpdatePolicyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /venues/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// userID попадает в контекст через middleware Auth, используется для аудита
	userID, _ := middleware.GetUserID(r.Context())

	policy, err := h.service.UpdatePolicy(r.Context(), venueID, &req)
	if err != nil {
		switch {
		case errors.Is(err, venueService.ErrVenueNotFound):
			h.logger.Warn("PUT /venues/{id}/config - Venue not found: venue_id=%d, user_id=%d", venueID, userID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, venueService.ErrInvalidInput):
			h.logger.Warn("PUT /venues/{id}/config - Invalid data: venue_id=%d, error=%v", venueID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /venues/{id}/config - Failed to update policy: venue_id=%d, error=%v", venueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /venues/{id}/config - Policy updated: venue_id=%d, user_id=%d", venueID, userID)
	handlers.RespondJSON(w, http.StatusOK, policy)
}
