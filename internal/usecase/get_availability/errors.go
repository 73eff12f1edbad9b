package get_availability

import "errors"

var (
	// ErrVenueNotFound возвращается, когда заведение не найдено
	ErrVenueNotFound = errors.New("get_availability: venue not found")

	// ErrPartyTooLarge возвращается, когда размер группы превышает
	// вместимость каждого активного ресурса заведения
	ErrPartyTooLarge = errors.New("get_availability: party size exceeds every resource capacity")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_availability: internal error")
)
