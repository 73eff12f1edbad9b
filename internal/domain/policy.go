package domain

import "time"

// VenuePolicy represents the per-venue booking policy consumed read-only
// by the availability and create paths. It is loaded as a snapshot per
// request, never shared as a mutable singleton.
type VenuePolicy struct {
	VenueID                int64
	DefaultDurationMinutes int
	BufferMinutes          int
	AutoAccept             bool
	// RequireAssignment запрещает создавать бронирование без назначенного ресурса
	RequireAssignment bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EffectiveDurationMinutes длительность бронирования с учётом буфера
// после него; именно этот интервал занимает ресурс
func (p *VenuePolicy) EffectiveDurationMinutes() int {
	return p.DefaultDurationMinutes + p.BufferMinutes
}

// InitialStatus returns the status a new booking starts in
func (p *VenuePolicy) InitialStatus() BookingStatus {
	if p.AutoAccept {
		return StatusConfirmed
	}
	return StatusPending
}

// DefaultPolicy возвращает политику по умолчанию для заведения без настроек
func DefaultPolicy(venueID int64) *VenuePolicy {
	return &VenuePolicy{
		VenueID:                venueID,
		DefaultDurationMinutes: DefaultDurationMinutes,
		BufferMinutes:          DefaultBufferMinutes,
		AutoAccept:             false,
	}
}
