package notifyservice

// BookingCreatedEvent событие создания бронирования
type BookingCreatedEvent struct {
	BookingID   int64   `json:"booking_id"`
	VenueID     int64   `json:"venue_id"`
	ResourceID  *int64  `json:"resource_id,omitempty"`
	BookingDate string  `json:"booking_date"` // "2025-10-15"
	StartTime   string  `json:"start_time"`   // "18:00"
	PartySize   int     `json:"party_size"`
	Status      string  `json:"status"`
	GuestName   string  `json:"guest_name"`
	GuestPhone  *string `json:"guest_phone,omitempty"`
	GuestEmail  *string `json:"guest_email,omitempty"`
}

// BookingStatusChangedEvent событие смены статуса бронирования
type BookingStatusChangedEvent struct {
	BookingID  int64   `json:"booking_id"`
	VenueID    int64   `json:"venue_id"`
	OldStatus  string  `json:"old_status"`
	NewStatus  string  `json:"new_status"`
	GuestName  string  `json:"guest_name"`
	GuestPhone *string `json:"guest_phone,omitempty"`
	GuestEmail *string `json:"guest_email,omitempty"`
}

// ErrorResponse модель ошибки от NotifyService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
