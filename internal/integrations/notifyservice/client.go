package notifyservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с NotifyService
// Доставка уведомлений не входит в транзакцию бронирования: вызывающая
// сторона логирует сбой и продолжает работу
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента NotifyService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// BookingCreated отправляет уведомление о создании бронирования
func (c *Client) BookingCreated(ctx context.Context, booking *domain.Booking) error {
	event := BookingCreatedEvent{
		BookingID:   booking.ID,
		VenueID:     booking.VenueID,
		ResourceID:  booking.ResourceID,
		BookingDate: booking.BookingDate.Format(domain.DateFormat),
		StartTime:   booking.StartTime.String(),
		PartySize:   booking.PartySize,
		Status:      string(booking.Status),
		GuestName:   booking.GuestName,
		GuestPhone:  booking.GuestPhone,
		GuestEmail:  booking.GuestEmail,
	}

	url := fmt.Sprintf("%s/internal/notifications/booking-created", c.baseURL)
	if err := c.post(ctx, url, event); err != nil {
		return err
	}

	c.log.Info("Sent booking-created notification for booking_id=%d", booking.ID)
	return nil
}

// BookingStatusChanged отправляет уведомление о смене статуса бронирования
func (c *Client) BookingStatusChanged(ctx context.Context, booking *domain.Booking, newStatus domain.BookingStatus) error {
	event := BookingStatusChangedEvent{
		BookingID:  booking.ID,
		VenueID:    booking.VenueID,
		OldStatus:  string(booking.Status),
		NewStatus:  string(newStatus),
		GuestName:  booking.GuestName,
		GuestPhone: booking.GuestPhone,
		GuestEmail: booking.GuestEmail,
	}

	url := fmt.Sprintf("%s/internal/notifications/booking-status-changed", c.baseURL)
	if err := c.post(ctx, url, event); err != nil {
		return err
	}

	c.log.Info("Sent status-changed notification for booking_id=%d (%s -> %s)",
		booking.ID, booking.Status, newStatus)
	return nil
}

func (c *Client) post(ctx context.Context, url string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal payload: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK, http.StatusAccepted, http.StatusNoContent:
		return nil
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}
}
