package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	getAvailability "github.com/m04kA/SMC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель слота доступности
type SlotResponse struct {
	StartTime            string  `json:"startTime"` // "18:00"
	Available            bool    `json:"available"`
	CandidateResourceIDs []int64 `json:"candidateResourceIds"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	VenueID   int64          `json:"venueId"`
	Date      string         `json:"date"`
	PartySize int            `json:"partySize"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(venueID int64, dateStr string, partySize int) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		VenueID:   venueID,
		Date:      date,
		PartySize: partySize,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		candidates := s.CandidateResourceIDs
		if candidates == nil {
			candidates = []int64{}
		}
		slots = append(slots, SlotResponse{
			StartTime:            s.StartTime.String(),
			Available:            s.Available,
			CandidateResourceIDs: candidates,
		})
	}

	return &AvailabilityResponse{
		VenueID:   resp.VenueID,
		Date:      resp.Date.Format(domain.DateFormat),
		PartySize: resp.PartySize,
		Slots:     slots,
	}
}
