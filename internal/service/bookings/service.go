package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями: чтение, смена статусов, отмена
// Переходы статусов валидируются по закрытой таблице в domain
type Service struct {
	bookingRepo  BookingRepository
	notifyClient NotifyClient
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	notifyClient NotifyClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		notifyClient: notifyClient,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetVenueBookings получает бронирования заведения с гибкой фильтрацией
// Поддерживает фильтрацию по ресурсу, периоду, статусу и включению
// завершённых/отменённых бронирований
func (s *Service) GetVenueBookings(ctx context.Context, req *models.GetVenueBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetVenueBookings: fetching bookings for venue=%d", req.VenueID)

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetVenueBookings: invalid filter for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByVenueWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetVenueBookings: repository error for venue=%d: %v", req.VenueID, err)
		return nil, fmt.Errorf("%w: GetVenueBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetVenueBookings: successfully fetched %d bookings for venue=%d", len(bookings), req.VenueID)
	return models.FromDomainBookingList(bookings), nil
}

// maxStatusAttempts количество попыток compare-and-swap при конкурентной
// смене статуса: каждая попытка перечитывает строку и валидирует переход заново
const maxStatusAttempts = 3

// UpdateStatus обновляет статус бронирования
// Переход должен быть допустим по таблице переходов; любой другой
// завершается ErrInvalidTransition и ничего не персистит.
// Запись выполняется compare-and-swap по прочитанному статусу: конкурентный
// запрос, изменивший статус первым, не может быть перезаписан - проигравший
// перечитывает строку и валидирует переход от актуального статуса
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	// Валидируем и конвертируем статус
	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}

	for attempt := 1; attempt <= maxStatusAttempts; attempt++ {
		// Получаем бронирование
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
				return nil, ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		// Проверяем допустимость перехода
		if !booking.Status.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for booking id=%d",
				booking.Status, newStatus, bookingID)
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		// Отмена идет через Cancel, чтобы зафиксировать причину и время отмены
		if newStatus == domain.StatusCancelled {
			err = s.bookingRepo.Cancel(ctx, bookingID, booking.Status, "")
		} else {
			err = s.bookingRepo.UpdateStatus(ctx, bookingID, booking.Status, newStatus)
		}
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("UpdateStatus: status of booking id=%d changed concurrently, attempt %d/%d",
				bookingID, attempt, maxStatusAttempts)
			continue
		}
		if err != nil {
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("UpdateStatus: booking id=%d updated to status=%s", bookingID, newStatus)

		// Уведомление после успешного обновления; сбой доставки не откатывает изменение
		s.notifyStatusChanged(ctx, booking, newStatus)

		updated, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			s.logger.Error("UpdateStatus: failed to reload booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: UpdateStatus - reload error: %v", ErrInternal, err)
		}

		return models.FromDomainBooking(updated), nil
	}

	s.logger.Warn("UpdateStatus: giving up on booking id=%d after %d attempts", bookingID, maxStatusAttempts)
	return nil, fmt.Errorf("%w: status changed concurrently", ErrInvalidTransition)
}

// Cancel отменяет бронирование с указанием причины
// Отмена - это переход состояния, а не удаление строки
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", bookingID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return nil, fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	// Compare-and-swap как в UpdateStatus: отменить можно только тот статус,
	// который был прочитан и прошел проверку CanBeCancelled
	for attempt := 1; attempt <= maxStatusAttempts; attempt++ {
		// Получаем бронирование
		booking, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking id=%d not found", bookingID)
				return nil, ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// Проверяем, можно ли отменить бронирование
		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
			return nil, ErrCannotCancel
		}

		err = s.bookingRepo.Cancel(ctx, bookingID, booking.Status, req.CancellationReason)
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			s.logger.Warn("Cancel: status of booking id=%d changed concurrently, attempt %d/%d",
				bookingID, attempt, maxStatusAttempts)
			continue
		}
		if err != nil {
			s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

		s.notifyStatusChanged(ctx, booking, domain.StatusCancelled)

		cancelled, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			s.logger.Error("Cancel: failed to reload booking id=%d: %v", bookingID, err)
			return nil, fmt.Errorf("%w: Cancel - reload error: %v", ErrInternal, err)
		}

		return models.FromDomainBooking(cancelled), nil
	}

	s.logger.Warn("Cancel: giving up on booking id=%d after %d attempts", bookingID, maxStatusAttempts)
	return nil, ErrCannotCancel
}

// notifyStatusChanged отправляет уведомление об изменении статуса (fire-and-forget)
func (s *Service) notifyStatusChanged(ctx context.Context, booking *domain.Booking, newStatus domain.BookingStatus) {
	if s.notifyClient == nil {
		return
	}
	if err := s.notifyClient.BookingStatusChanged(ctx, booking, newStatus); err != nil {
		s.logger.Warn("notifyStatusChanged: notification failed for booking id=%d: %v", booking.ID, err)
	}
}
