package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-ReservationService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ReservationService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ReservationService/pkg/ptr"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

type fakeRepo struct {
	bookings map[int64]*domain.Booking

	// Первые staleReads чтений возвращают снапшот со статусом staleStatus:
	// имитация конкурентного запроса, изменившего строку после чтения
	staleStatus domain.BookingStatus
	staleReads  int
}

func newFakeRepo(bookings ...*domain.Booking) *fakeRepo {
	m := make(map[int64]*domain.Booking, len(bookings))
	for _, b := range bookings {
		m[b.ID] = b
	}
	return &fakeRepo{bookings: m}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *b
	if f.staleReads > 0 {
		f.staleReads--
		copied.Status = f.staleStatus
	}
	return &copied, nil
}

func (f *fakeRepo) GetByVenueWithFilter(_ context.Context, filter domain.VenueBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range f.bookings {
		if b.VenueID != filter.VenueID {
			continue
		}
		if filter.Status != nil && b.Status != *filter.Status {
			continue
		}
		if filter.Status == nil && !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id int64, fromStatus, toStatus domain.BookingStatus) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != fromStatus {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = toStatus
	return nil
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, fromStatus domain.BookingStatus, reason string) error {
	b, ok := f.bookings[id]
	if !ok || b.Status != fromStatus {
		return bookingRepo.ErrStatusConflict
	}
	b.Status = domain.StatusCancelled
	b.CancellationReason = &reason
	now := time.Now()
	b.CancelledAt = &now
	return nil
}

type recordingNotifier struct {
	calls []domain.BookingStatus
}

func (r *recordingNotifier) BookingStatusChanged(_ context.Context, _ *domain.Booking, newStatus domain.BookingStatus) error {
	r.calls = append(r.calls, newStatus)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testBooking(id int64, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		VenueID:         1,
		ResourceID:      ptr.Ptr(int64(2)),
		BookingDate:     time.Date(2030, 10, 14, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("18:00"),
		DurationMinutes: 120,
		PartySize:       2,
		Status:          status,
		GuestName:       "Иван Петров",
		IdempotencyKey:  "key-1",
	}
}

func TestGetByID(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking(1, domain.StatusPending)), nil, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "18:00", resp.StartTime)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatusAllowedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed"},
		{"confirmed to seated", domain.StatusConfirmed, "seated"},
		{"confirmed to no_show", domain.StatusConfirmed, "no_show"},
		{"seated to completed", domain.StatusSeated, "completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			svc := NewService(newFakeRepo(testBooking(1, tt.from)), notifier, nopLogger{})

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			require.NoError(t, err)
			assert.Equal(t, tt.to, resp.Status)
			require.Len(t, notifier.calls, 1)
			assert.Equal(t, domain.BookingStatus(tt.to), notifier.calls[0])
		})
	}
}

func TestUpdateStatusRejectedTransitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
	}{
		{"pending to seated", domain.StatusPending, "seated"},
		{"pending to completed", domain.StatusPending, "completed"},
		{"seated to pending", domain.StatusSeated, "pending"},
		{"seated to no_show", domain.StatusSeated, "no_show"},
		{"completed to seated", domain.StatusCompleted, "seated"},
		{"cancelled to confirmed", domain.StatusCancelled, "confirmed"},
		{"no_show to confirmed", domain.StatusNoShow, "confirmed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(testBooking(1, tt.from))
			notifier := &recordingNotifier{}
			svc := NewService(repo, notifier, nopLogger{})

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			assert.ErrorIs(t, err, ErrInvalidTransition)

			// Статус не изменился, уведомление не отправлено
			assert.Equal(t, tt.from, repo.bookings[1].Status)
			assert.Empty(t, notifier.calls)
		})
	}
}

func TestUpdateStatusConcurrentCancelNotOverwritten(t *testing.T) {
	// Строка уже отменена, но первое чтение возвращает устаревший CONFIRMED:
	// конкурентная отмена произошла между чтением и записью. Compare-and-swap
	// не пропускает запись, повторное чтение видит CANCELLED и переход
	// CANCELLED -> SEATED отклоняется
	repo := newFakeRepo(testBooking(1, domain.StatusCancelled))
	repo.staleStatus = domain.StatusConfirmed
	repo.staleReads = 1
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "seated"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Терминальный CANCELLED не перезаписан, уведомление не отправлено
	assert.Equal(t, domain.StatusCancelled, repo.bookings[1].Status)
	assert.Empty(t, notifier.calls)
}

func TestCancelConcurrentSeatNotOverwritten(t *testing.T) {
	// Зеркальная гонка: гостя успели посадить, отмена читает устаревший
	// CONFIRMED. После конфликта записи повторное чтение видит SEATED
	repo := newFakeRepo(testBooking(1, domain.StatusSeated))
	repo.staleStatus = domain.StatusConfirmed
	repo.staleReads = 1
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusSeated, repo.bookings[1].Status)
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking(1, domain.StatusPending)), nil, nopLogger{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "frozen"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatusToCancelledRecordsCancellation(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	svc := NewService(repo, nil, nopLogger{})

	resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	// Отмена через смену статуса тоже фиксирует время отмены
	assert.NotNil(t, repo.bookings[1].CancelledAt)
}

func TestCancel(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusConfirmed))
	notifier := &recordingNotifier{}
	svc := NewService(repo, notifier, nopLogger{})

	resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CancellationReason: "гость попросил перенести",
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)
	require.NotNil(t, resp.CancellationReason)
	assert.Equal(t, "гость попросил перенести", *resp.CancellationReason)
	assert.NotNil(t, resp.CancelledAt)
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, domain.StatusCancelled, notifier.calls[0])
}

func TestCancelSeatedBooking(t *testing.T) {
	repo := newFakeRepo(testBooking(1, domain.StatusSeated))
	svc := NewService(repo, nil, nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, domain.StatusSeated, repo.bookings[1].Status)
}

func TestCancelReasonTooLong(t *testing.T) {
	svc := NewService(newFakeRepo(testBooking(1, domain.StatusPending)), nil, nopLogger{})

	_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		CancellationReason: strings.Repeat("ы", domain.MaxCancellationReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetVenueBookingsExcludesInactiveByDefault(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, domain.StatusPending),
		testBooking(2, domain.StatusCancelled),
		testBooking(3, domain.StatusConfirmed),
	)
	svc := NewService(repo, nil, nopLogger{})

	resp, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{VenueID: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	all, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID:         1,
		IncludeInactive: true,
	})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 3)
}

func TestGetVenueBookingsInvalidStatusFilter(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nopLogger{})

	badStatus := "frozen"
	_, err := svc.GetVenueBookings(context.Background(), &models.GetVenueBookingsRequest{
		VenueID: 1,
		Status:  &badStatus,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
