package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
	"github.com/m04kA/SMC-ReservationService/internal/service/venue/models"
)

// Service сервис конфигурации заведения: смены, ресурсы, политика бронирования
type Service struct {
	venueRepo VenueRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса конфигурации заведения
func NewService(venueRepo VenueRepository, logger Logger) *Service {
	return &Service{
		venueRepo: venueRepo,
		logger:    logger,
	}
}

// GetConfig возвращает полную конфигурацию заведения
// Отсутствующая политика подменяется дефолтной, это не ошибка
func (s *Service) GetConfig(ctx context.Context, venueID int64) (*models.VenueConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for venue=%d", venueID)

	venue, err := s.venueRepo.GetVenue(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("GetConfig: venue=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("GetConfig: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
	}

	shifts, err := s.venueRepo.GetShifts(ctx, venueID)
	if err != nil {
		s.logger.Error("GetConfig: failed to fetch shifts for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetConfig - shifts error: %v", ErrInternal, err)
	}

	resources, err := s.venueRepo.GetResources(ctx, venueID)
	if err != nil {
		s.logger.Error("GetConfig: failed to fetch resources for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: GetConfig - resources error: %v", ErrInternal, err)
	}

	policy, err := s.venueRepo.GetPolicy(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrPolicyNotFound) {
			policy = domain.DefaultPolicy(venueID)
		} else {
			s.logger.Error("GetConfig: failed to fetch policy for venue=%d: %v", venueID, err)
			return nil, fmt.Errorf("%w: GetConfig - policy error: %v", ErrInternal, err)
		}
	}

	resp := &models.VenueConfigResponse{
		VenueID:   venue.ID,
		Name:      venue.Name,
		Shifts:    make([]models.ShiftResponse, 0, len(shifts)),
		Resources: make([]models.ResourceResponse, 0, len(resources)),
		Policy:    models.FromDomainPolicy(policy),
	}
	for _, shift := range shifts {
		resp.Shifts = append(resp.Shifts, models.FromDomainShift(shift))
	}
	for _, resource := range resources {
		resp.Resources = append(resp.Resources, models.FromDomainResource(resource))
	}

	return resp, nil
}

// UpdatePolicy обновляет политику бронирования заведения
// Незаполненные поля запроса сохраняют текущие значения
func (s *Service) UpdatePolicy(ctx context.Context, venueID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error) {
	s.logger.Info("UpdatePolicy: updating policy for venue=%d", venueID)

	if err := validatePolicyRequest(req); err != nil {
		s.logger.Warn("UpdatePolicy: invalid request for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем существование заведения
	if _, err := s.venueRepo.GetVenue(ctx, venueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			s.logger.Warn("UpdatePolicy: venue=%d not found", venueID)
			return nil, ErrVenueNotFound
		}
		s.logger.Error("UpdatePolicy: repository error for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: UpdatePolicy - repository error: %v", ErrInternal, err)
	}

	// Частичное обновление поверх текущей (или дефолтной) политики
	policy, err := s.venueRepo.GetPolicy(ctx, venueID)
	if err != nil {
		if errors.Is(err, venueRepo.ErrPolicyNotFound) {
			policy = domain.DefaultPolicy(venueID)
		} else {
			s.logger.Error("UpdatePolicy: failed to fetch policy for venue=%d: %v", venueID, err)
			return nil, fmt.Errorf("%w: UpdatePolicy - policy error: %v", ErrInternal, err)
		}
	}
	req.ApplyTo(policy)

	updated, err := s.venueRepo.UpsertPolicy(ctx, policy)
	if err != nil {
		s.logger.Error("UpdatePolicy: failed to upsert policy for venue=%d: %v", venueID, err)
		return nil, fmt.Errorf("%w: UpdatePolicy - upsert error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePolicy: policy updated for venue=%d", venueID)

	resp := models.FromDomainPolicy(updated)
	return &resp, nil
}

func validatePolicyRequest(req *models.UpdatePolicyRequest) error {
	if req.DefaultDurationMinutes != nil {
		if *req.DefaultDurationMinutes < domain.MinDurationMinutes || *req.DefaultDurationMinutes > domain.MaxDurationMinutes {
			return fmt.Errorf("defaultDurationMinutes must be between %d and %d",
				domain.MinDurationMinutes, domain.MaxDurationMinutes)
		}
	}
	if req.BufferMinutes != nil && *req.BufferMinutes < 0 {
		return fmt.Errorf("bufferMinutes must not be negative")
	}
	return nil
}
