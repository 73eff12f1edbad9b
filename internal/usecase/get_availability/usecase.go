package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
)

// UseCase use case расчета доступных слотов
//
// Результат - read-only снапшот: он не удерживает блокировок и может устареть
// к моменту создания бронирования. Корректность обеспечивается повторной
// проверкой на стороне create_booking внутри транзакции.
type UseCase struct {
	bookingRepo BookingRepository
	venueRepo   VenueRepository
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		venueRepo:   venueRepo,
		logger:      logger,
	}
}

// Execute выполняет use case расчета доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: venue=%d, date=%s, party_size=%d",
		req.VenueID, req.Date.Format(domain.DateFormat), req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование заведения
	if _, err := uc.venueRepo.GetVenue(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("GetAvailability: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("GetAvailability: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 3. Получаем политику бронирования; при отсутствии используем дефолтную
	policy, err := uc.venueRepo.GetPolicy(ctx, req.VenueID)
	if err != nil {
		if !errors.Is(err, venueRepo.ErrPolicyNotFound) {
			uc.logger.Error("GetAvailability: failed to get policy for venue id=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(req.VenueID)
		uc.logger.Info("GetAvailability: using default policy for venue=%d", req.VenueID)
	}

	// 4. Получаем ресурсы и проверяем, что группа в принципе помещается
	resources, err := uc.venueRepo.GetResources(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get resources for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	// Негабаритная группа допустима без назначения ресурса, если есть
	// объединяемые столы и политика не требует назначения при создании -
	// тот же критерий, по которому create_booking принимает такую группу
	oversized := false
	if domain.MaxCapacity(resources) < req.PartySize {
		if policy.RequireAssignment || !hasCombinable(resources) {
			uc.logger.Warn("GetAvailability: party_size=%d exceeds max capacity for venue=%d",
				req.PartySize, req.VenueID)
			return nil, ErrPartyTooLarge
		}
		oversized = true
	}

	// 5. Получаем смены; если на этот день недели смен нет - пустой список слотов
	shifts, err := uc.venueRepo.GetShifts(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get shifts for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
	}

	candidates := generateCandidateTimes(shifts, req.Date.Weekday(), policy.EffectiveDurationMinutes())
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailability: no shifts configured for venue=%d on %s",
			req.VenueID, req.Date.Weekday())
		return &Response{
			VenueID:   req.VenueID,
			Date:      req.Date,
			PartySize: req.PartySize,
			Slots:     []domain.AvailableSlot{},
		}, nil
	}

	// 6. Негабаритная группа не занимает конкретный ресурс: любой кандидат
	// времени доступен, список ресурсов-кандидатов пуст до ручного назначения
	if oversized {
		uc.logger.Info("GetAvailability: oversized party %d for venue=%d, slots await manual assignment",
			req.PartySize, req.VenueID)
		return &Response{
			VenueID:   req.VenueID,
			Date:      req.Date,
			PartySize: req.PartySize,
			Slots:     unassignedSlots(candidates),
		}, nil
	}

	// 7. Получаем активные бронирования на эту дату
	filter := domain.VenueBookingsFilter{
		VenueID:         req.VenueID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeInactive: false, // Только активные бронирования
	}

	bookings, err := uc.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Вычисляем свободные ресурсы для каждого слота
	slots := buildSlots(candidates, resources, bookings, req.PartySize, policy)

	uc.logger.Info("GetAvailability: generated %d slots for venue=%d, date=%s",
		len(slots), req.VenueID, req.Date.Format(domain.DateFormat))

	return &Response{
		VenueID:   req.VenueID,
		Date:      req.Date,
		PartySize: req.PartySize,
		Slots:     slots,
	}, nil
}
