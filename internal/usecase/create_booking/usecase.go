package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	venueRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/venue"
)

// UseCase use case создания бронирования
//
// Ключевое свойство: проверка "нет пересекающегося активного бронирования на
// том же ресурсе" выполняется внутри той же сериализуемой транзакции, что и
// вставка строки. Из двух конкурентных запросов на один ресурс и интервал
// выигрывает один; проигравший получает serialization failure, транзакция
// повторяется менеджером транзакций и перераспределяет группу на оставшиеся
// ресурсы, а когда их нет - завершается ErrSlotNotAvailable.
type UseCase struct {
	bookingRepo  BookingRepository
	venueRepo    VenueRepository
	notifyClient NotifyClient
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	venueRepo VenueRepository,
	notifyClient NotifyClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		venueRepo:    venueRepo,
		notifyClient: notifyClient,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: key=%s, venue=%d, date=%s, time=%s, party_size=%d",
		req.IdempotencyKey, req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата бронирования не может быть в прошлом
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrInvalidDate
	}

	// 3. Быстрый путь идемпотентности: повторный запрос с тем же ключом
	// возвращает уже созданное бронирование без побочных эффектов
	existing, err := uc.bookingRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
	if err == nil {
		uc.logger.Info("CreateBooking: idempotent replay, returning booking id=%d for key=%s",
			existing.ID, req.IdempotencyKey)
		return toResponse(existing), nil
	}
	if !errors.Is(err, bookingRepo.ErrBookingNotFound) {
		uc.logger.Error("CreateBooking: failed to check idempotency key: %v", err)
		return nil, fmt.Errorf("%w: failed to check idempotency key: %v", ErrInternal, err)
	}

	// 4. Получаем заведение
	if _, err := uc.venueRepo.GetVenue(ctx, req.VenueID); err != nil {
		if errors.Is(err, venueRepo.ErrVenueNotFound) {
			uc.logger.Warn("CreateBooking: venue id=%d not found", req.VenueID)
			return nil, ErrVenueNotFound
		}
		uc.logger.Error("CreateBooking: failed to get venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get venue: %v", ErrInternal, err)
	}

	// 5. Получаем политику; при отсутствии используем дефолтную
	policy, err := uc.venueRepo.GetPolicy(ctx, req.VenueID)
	if err != nil {
		if !errors.Is(err, venueRepo.ErrPolicyNotFound) {
			uc.logger.Error("CreateBooking: failed to get policy for venue id=%d: %v", req.VenueID, err)
			return nil, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}
		policy = domain.DefaultPolicy(req.VenueID)
		uc.logger.Info("CreateBooking: using default policy for venue=%d", req.VenueID)
	}

	// 6. Вычисляем длительность бронирования
	duration, err := resolveDuration(req, policy)
	if err != nil {
		uc.logger.Warn("CreateBooking: duration validation failed: %v", err)
		return nil, err
	}

	// 7. Получаем ресурсы и смены
	resources, err := uc.venueRepo.GetResources(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get resources for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get resources: %v", ErrInternal, err)
	}

	shifts, err := uc.venueRepo.GetShifts(ctx, req.VenueID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get shifts for venue id=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: failed to get shifts: %v", ErrInternal, err)
	}

	// 8. Проверяем, что запрошенное время - валидный кандидат слота
	if err := validateTimeSlot(shifts, req.Date.Weekday(), req.StartTime, duration+policy.BufferMinutes); err != nil {
		uc.logger.Warn("CreateBooking: time slot validation failed for venue=%d, time=%s: %v",
			req.VenueID, req.StartTime, err)
		return nil, err
	}

	// 9. Проверяем вместимость. Негабаритная группа допускается без назначения
	// ресурса, если у заведения есть объединяемые столы и политика не требует
	// назначения при создании - столы объединит персонал вручную
	allowUnassigned := false
	if domain.MaxCapacity(resources) < req.PartySize {
		if policy.RequireAssignment || !hasCombinable(resources) {
			uc.logger.Warn("CreateBooking: party_size=%d exceeds max capacity for venue=%d",
				req.PartySize, req.VenueID)
			return nil, ErrPartyTooLarge
		}
		allowUnassigned = true
		uc.logger.Info("CreateBooking: oversized party %d for venue=%d, booking will await manual assignment",
			req.PartySize, req.VenueID)
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 10. Проверка доступности + вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 10.1. Забираем активные бронирования кандидатов на эту дату с
		// блокировкой (FOR UPDATE). Единица конкуренции - (ресурсы-кандидаты,
		// дата): бронирования на посторонних ресурсах не блокируются.
		// Негабаритная группа не занимает конкретный ресурс, проверка
		// занятости ей не нужна
		var bookings []*domain.Booking
		if !allowUnassigned {
			filter := domain.VenueBookingsFilter{
				VenueID:         req.VenueID,
				ResourceIDs:     candidateResourceIDs(resources, req.ResourceID, req.PartySize),
				StartDate:       &req.Date,
				EndDate:         &req.Date,
				IncludeInactive: false, // Только активные бронирования
			}

			locked, lockErr := uc.bookingRepo.GetByVenueWithFilter(txCtx, filter)
			if lockErr != nil {
				uc.logger.Error("CreateBooking: failed to get bookings: %v", lockErr)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, lockErr)
			}
			bookings = locked
		}

		// 10.2. Выбираем ресурс
		resourceID, err := uc.allocate(req, resources, bookings, duration, policy, allowUnassigned)
		if err != nil {
			return err
		}

		// 10.3. Создаем бронирование; начальный статус определяется политикой
		booking := &domain.Booking{
			VenueID:         req.VenueID,
			ResourceID:      resourceID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: duration,
			PartySize:       req.PartySize,
			Status:          policy.InitialStatus(),
			GuestName:       req.GuestName,
			GuestPhone:      req.GuestPhone,
			GuestEmail:      req.GuestEmail,
			Notes:           req.Notes,
			IdempotencyKey:  req.IdempotencyKey,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return err
		}

		result = created
		return nil
	})

	// Конкурентный запрос с тем же ключом успел вставить строку первым -
	// возвращаем её: повтор никогда не является ошибкой
	if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
		winner, lookupErr := uc.bookingRepo.GetByIdempotencyKey(ctx, req.IdempotencyKey)
		if lookupErr != nil {
			uc.logger.Error("CreateBooking: failed to read winner for key=%s: %v", req.IdempotencyKey, lookupErr)
			return nil, fmt.Errorf("%w: failed to read duplicate booking: %v", ErrInternal, lookupErr)
		}
		uc.logger.Info("CreateBooking: concurrent duplicate for key=%s, returning booking id=%d",
			req.IdempotencyKey, winner.ID)
		return toResponse(winner), nil
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s, resource=%v",
		result.ID, result.Status, result.ResourceID)

	// 11. Уведомление после коммита; сбой доставки не откатывает бронирование
	uc.notifyCreated(ctx, result)

	return toResponse(result), nil
}

// allocate выбирает ресурс для бронирования внутри транзакции.
// Явно запрошенный ресурс должен быть свободен; иначе best-fit по свободным.
func (uc *UseCase) allocate(
	req *Request,
	resources []*domain.Resource,
	bookings []*domain.Booking,
	duration int,
	policy *domain.VenuePolicy,
	allowUnassigned bool,
) (*int64, error) {
	if allowUnassigned {
		return nil, nil
	}

	free := freeResources(resources, bookings, req.StartTime, duration, policy.BufferMinutes, req.PartySize)

	// Явно запрошенный ресурс
	if req.ResourceID != nil {
		if findResource(resources, *req.ResourceID) == nil {
			uc.logger.Warn("CreateBooking: resource id=%d not found in venue=%d", *req.ResourceID, req.VenueID)
			return nil, ErrResourceNotFound
		}
		for _, r := range free {
			if r.ID == *req.ResourceID {
				return req.ResourceID, nil
			}
		}
		uc.logger.Warn("CreateBooking: requested resource id=%d is not free for %s",
			*req.ResourceID, req.StartTime)
		return nil, ErrSlotNotAvailable
	}

	best := bestFitResource(free, req.PartySize)
	if best == nil {
		uc.logger.Warn("CreateBooking: no free resource for venue=%d, date=%s, time=%s, party_size=%d",
			req.VenueID, req.Date.Format(domain.DateFormat), req.StartTime, req.PartySize)
		return nil, ErrSlotNotAvailable
	}

	return &best.ID, nil
}

// notifyCreated отправляет уведомление о созданном бронировании (fire-and-forget)
func (uc *UseCase) notifyCreated(ctx context.Context, booking *domain.Booking) {
	if uc.notifyClient == nil {
		return
	}
	if err := uc.notifyClient.BookingCreated(ctx, booking); err != nil {
		uc.logger.Warn("CreateBooking: notification failed for booking id=%d: %v", booking.ID, err)
	}
}
