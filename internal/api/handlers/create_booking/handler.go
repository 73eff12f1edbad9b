package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDateOrTime    = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgMissingIdempotency   = "ключ идемпотентности обязателен"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgVenueNotFound        = "заведение не найдено"
	msgResourceNotFound     = "ресурс не найден"
	msgPartyTooLarge        = "группа гостей превышает вместимость заведения"
	msgVenueClosed          = "заведение закрыто в выбранное время"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgInvalidBookingDate   = "некорректная дата бронирования"
	msgInvalidBookingFields = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
// Ключ идемпотентности принимается из заголовка Idempotency-Key,
// поле idempotencyKey в теле используется как fallback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if key := r.Header.Get("Idempotency-Key"); key != "" {
		req.IdempotencyKey = key
	}
	if req.IdempotencyKey == "" {
		h.logger.Warn("POST /bookings - Missing idempotency key: venue_id=%d", req.VenueID)
		handlers.RespondBadRequest(w, msgMissingIdempotency)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: venue_id=%d, date=%s, start_time=%s",
				req.VenueID, req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrVenueNotFound):
			h.logger.Warn("POST /bookings - Venue not found: venue_id=%d", req.VenueID)
			handlers.RespondNotFound(w, msgVenueNotFound)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: venue_id=%d, resource_id=%v", req.VenueID, req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrPartyTooLarge):
			h.logger.Warn("POST /bookings - Party too large: venue_id=%d, party_size=%d", req.VenueID, req.PartySize)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPartyTooLarge)

		case errors.Is(err, createBooking.ErrVenueClosed):
			h.logger.Warn("POST /bookings - Venue closed: venue_id=%d, date=%s, start_time=%s",
				req.VenueID, req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgVenueClosed)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: venue_id=%d, start_time=%s", req.VenueID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: venue_id=%d, date=%s", req.VenueID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondBadRequest(w, msgInvalidBookingFields)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: venue_id=%d, error=%v", req.VenueID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, venue_id=%d, status=%s",
		result.ID, req.VenueID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
