package create_booking

import "errors"

var (
	// ErrVenueNotFound возвращается, когда заведение не найдено
	ErrVenueNotFound = errors.New("create_booking: venue not found")

	// ErrResourceNotFound возвращается, когда явно запрошенный ресурс
	// не найден в заведении или неактивен
	ErrResourceNotFound = errors.New("create_booking: resource not found")

	// ErrPartyTooLarge возвращается, когда размер группы превышает
	// вместимость каждого ресурса заведения
	ErrPartyTooLarge = errors.New("create_booking: party size exceeds every resource capacity")

	// ErrSlotNotAvailable возвращается, когда для запрошенного интервала
	// не осталось свободного ресурса достаточной вместимости
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrVenueClosed возвращается, когда на указанную дату нет активных смен
	ErrVenueClosed = errors.New("create_booking: venue is closed on this date")

	// ErrInvalidTimeSlot возвращается, когда запрошенное время не является
	// валидным кандидатом слота (вне смен или не по сетке)
	ErrInvalidTimeSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidDate возвращается при дате бронирования в прошлом
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
