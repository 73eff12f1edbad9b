package create_booking

import (
	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// freeResources возвращает активные ресурсы достаточной вместимости, у которых
// ни одно активное бронирование не пересекается с эффективным интервалом
// [start, start + duration + buffer). Интервалы полуоткрытые, пересечение
// строгое: aStart < bEnd && bStart < aEnd.
func freeResources(
	resources []*domain.Resource,
	bookings []*domain.Booking,
	start types.TimeString,
	durationMinutes int,
	bufferMinutes int,
	partySize int,
) []*domain.Resource {
	// Группируем активные бронирования по ресурсу
	byResource := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		if !b.IsActive() || b.ResourceID == nil {
			continue
		}
		byResource[*b.ResourceID] = append(byResource[*b.ResourceID], b)
	}

	aStart := start.Minutes()
	aEnd := aStart + durationMinutes + bufferMinutes

	free := make([]*domain.Resource, 0)
	for _, resource := range resources {
		if !resource.CanSeat(partySize) {
			continue
		}

		occupied := false
		for _, b := range byResource[resource.ID] {
			bStart := b.StartTime.Minutes()
			bEnd := bStart + b.DurationMinutes + bufferMinutes
			if aStart < bEnd && bStart < aEnd {
				occupied = true
				break
			}
		}

		if !occupied {
			free = append(free, resource)
		}
	}

	return free
}

// bestFitResource выбирает ресурс минимальной достаточной вместимости
// (минимизация потерянных мест); при равной вместимости - наименьший ID
// для детерминизма. Возвращает nil, если кандидатов нет.
func bestFitResource(candidates []*domain.Resource, partySize int) *domain.Resource {
	var best *domain.Resource

	for _, resource := range candidates {
		if !resource.CanSeat(partySize) {
			continue
		}
		if best == nil ||
			resource.Capacity < best.Capacity ||
			(resource.Capacity == best.Capacity && resource.ID < best.ID) {
			best = resource
		}
	}

	return best
}

// candidateResourceIDs возвращает набор ресурсов, за которые конкурирует
// запрос: явно запрошенный ресурс либо все ресурсы достаточной вместимости.
// По этому набору сужается блокировка FOR UPDATE при проверке занятости
func candidateResourceIDs(resources []*domain.Resource, requested *int64, partySize int) []int64 {
	if requested != nil {
		return []int64{*requested}
	}

	ids := make([]int64, 0, len(resources))
	for _, r := range resources {
		if r.CanSeat(partySize) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// hasCombinable возвращает true, если у заведения есть хотя бы один активный
// объединяемый ресурс. Такие заведения принимают негабаритные группы без
// назначения ресурса - столы объединяются вручную персоналом.
func hasCombinable(resources []*domain.Resource) bool {
	for _, r := range resources {
		if r.IsActive && r.Combinable {
			return true
		}
	}
	return false
}
