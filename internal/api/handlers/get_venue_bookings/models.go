package get_venue_bookings

import (
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// ToServiceRequest собирает фильтр из query параметров
// Поддерживаются: resourceId, startDate, endDate, status, includeInactive
func ToServiceRequest(venueID int64, query url.Values) (*models.GetVenueBookingsRequest, error) {
	req := &models.GetVenueBookingsRequest{
		VenueID: venueID,
	}

	if v := query.Get("resourceId"); v != "" {
		resourceID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, err
		}
		req.ResourceID = &resourceID
	}

	if v := query.Get("startDate"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("endDate"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
