package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	createBooking "github.com/m04kA/SMC-ReservationService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	IdempotencyKey string  `json:"idempotencyKey"`
	VenueID        int64   `json:"venueId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "18:00"
	EndTime        *string `json:"endTime,omitempty"`
	PartySize      int     `json:"partySize"`
	ResourceID     *int64  `json:"resourceId,omitempty"`
	GuestName      string  `json:"guestName"`
	GuestPhone     *string `json:"guestPhone,omitempty"`
	GuestEmail     *string `json:"guestEmail,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	VenueID         int64   `json:"venueId"`
	ResourceID      *int64  `json:"resourceId,omitempty"`
	BookingDate     string  `json:"bookingDate"`
	StartTime       string  `json:"startTime"`
	DurationMinutes int     `json:"durationMinutes"`
	PartySize       int     `json:"partySize"`
	Status          string  `json:"status"`
	GuestName       string  `json:"guestName"`
	GuestPhone      *string `json:"guestPhone,omitempty"`
	GuestEmail      *string `json:"guestEmail,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	IdempotencyKey  string  `json:"idempotencyKey"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время начала
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	// Парсим время окончания, если задано
	var endTime *types.TimeString
	if r.EndTime != nil {
		et, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		endTime = &et
	}

	return &createBooking.Request{
		IdempotencyKey: r.IdempotencyKey,
		VenueID:        r.VenueID,
		Date:           bookingDate,
		StartTime:      startTime,
		EndTime:        endTime,
		PartySize:      r.PartySize,
		ResourceID:     r.ResourceID,
		GuestName:      r.GuestName,
		GuestPhone:     r.GuestPhone,
		GuestEmail:     r.GuestEmail,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		VenueID:         resp.VenueID,
		ResourceID:      resp.ResourceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		PartySize:       resp.PartySize,
		Status:          resp.Status,
		GuestName:       resp.GuestName,
		GuestPhone:      resp.GuestPhone,
		GuestEmail:      resp.GuestEmail,
		Notes:           resp.Notes,
		IdempotencyKey:  resp.IdempotencyKey,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
