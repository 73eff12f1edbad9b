package models

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модели

// UpdatePolicyRequest запрос на обновление политики бронирования заведения
// Все поля опциональны: отсутствующее поле сохраняет текущее значение
type UpdatePolicyRequest struct {
	DefaultDurationMinutes *int  `json:"defaultDurationMinutes,omitempty"`
	BufferMinutes          *int  `json:"bufferMinutes,omitempty"`
	AutoAccept             *bool `json:"autoAccept,omitempty"`
	RequireAssignment      *bool `json:"requireAssignment,omitempty"`
}

// Response модели

// ShiftResponse смена в расписании заведения
type ShiftResponse struct {
	ID        int64  `json:"id"`
	StartTime string `json:"startTime"` // "11:00"
	EndTime   string `json:"endTime"`   // "23:00"
	Weekdays  []int  `json:"weekdays"`  // 0 = воскресенье ... 6 = суббота
	IsActive  bool   `json:"isActive"`
}

// ResourceResponse бронируемый ресурс заведения
type ResourceResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Capacity   int    `json:"capacity"`
	Combinable bool   `json:"combinable"`
	IsActive   bool   `json:"isActive"`
}

// PolicyResponse политика бронирования заведения
type PolicyResponse struct {
	DefaultDurationMinutes int  `json:"defaultDurationMinutes"`
	BufferMinutes          int  `json:"bufferMinutes"`
	AutoAccept             bool `json:"autoAccept"`
	RequireAssignment      bool `json:"requireAssignment"`
}

// VenueConfigResponse полная конфигурация заведения: смены, ресурсы, политика
type VenueConfigResponse struct {
	VenueID   int64              `json:"venueId"`
	Name      string             `json:"name"`
	Shifts    []ShiftResponse    `json:"shifts"`
	Resources []ResourceResponse `json:"resources"`
	Policy    PolicyResponse     `json:"policy"`
}

// Методы конвертации

// FromDomainShift конвертирует domain модель смены в DTO
func FromDomainShift(s *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ID:        s.ID,
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Weekdays:  s.Weekdays,
		IsActive:  s.IsActive,
	}
}

// FromDomainResource конвертирует domain модель ресурса в DTO
func FromDomainResource(r *domain.Resource) ResourceResponse {
	return ResourceResponse{
		ID:         r.ID,
		Name:       r.Name,
		Capacity:   r.Capacity,
		Combinable: r.Combinable,
		IsActive:   r.IsActive,
	}
}

// FromDomainPolicy конвертирует domain модель политики в DTO
func FromDomainPolicy(p *domain.VenuePolicy) PolicyResponse {
	return PolicyResponse{
		DefaultDurationMinutes: p.DefaultDurationMinutes,
		BufferMinutes:          p.BufferMinutes,
		AutoAccept:             p.AutoAccept,
		RequireAssignment:      p.RequireAssignment,
	}
}

// ApplyTo накладывает заполненные поля запроса на текущую политику
func (r *UpdatePolicyRequest) ApplyTo(policy *domain.VenuePolicy) {
	if r.DefaultDurationMinutes != nil {
		policy.DefaultDurationMinutes = *r.DefaultDurationMinutes
	}
	if r.BufferMinutes != nil {
		policy.BufferMinutes = *r.BufferMinutes
	}
	if r.AutoAccept != nil {
		policy.AutoAccept = *r.AutoAccept
	}
	if r.RequireAssignment != nil {
		policy.RequireAssignment = *r.RequireAssignment
	}
}
