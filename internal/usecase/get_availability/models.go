package get_availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Request модель запроса на расчет доступности
type Request struct {
	VenueID   int64     // ID заведения
	Date      time.Time // Дата (без времени)
	PartySize int       // Размер группы гостей
}

// Response модель ответа со списком слотов
// Slots отсортированы по времени начала по возрастанию
type Response struct {
	VenueID   int64
	Date      time.Time
	PartySize int
	Slots     []domain.AvailableSlot
}
