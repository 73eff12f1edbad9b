package get_availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// generateCandidateTimes генерирует кандидатов времени начала для всех смен,
// активных в указанный день недели.
//
// Кандидаты идут с фиксированным шагом domain.SlotGranularityMinutes от начала
// смены; кандидат остаётся, только если его эффективный интервал
// [t, t + duration + buffer) помещается до конца смены. Дубликаты времени от
// пересекающихся смен схлопываются, результат отсортирован по возрастанию.
func generateCandidateTimes(
	shifts []*domain.Shift,
	weekday time.Weekday,
	effectiveDurationMinutes int,
) []types.TimeString {
	seen := make(map[int]bool)
	minutes := make([]int, 0)

	for _, shift := range shifts {
		if !shift.AppliesTo(weekday) {
			continue
		}

		start := shift.StartTime.Minutes()
		end := shift.EndTime.Minutes()

		for t := start; t < end; t += domain.SlotGranularityMinutes {
			// Эффективный интервал слота должен поместиться до конца смены
			if t+effectiveDurationMinutes > end {
				break
			}
			if !seen[t] {
				seen[t] = true
				minutes = append(minutes, t)
			}
		}
	}

	sort.Ints(minutes)

	candidates := make([]types.TimeString, 0, len(minutes))
	for _, m := range minutes {
		ts, err := types.NewTimeStringFromMinutes(m)
		if err != nil {
			// Смена с некорректными границами; такой кандидат пропускается
			continue
		}
		candidates = append(candidates, ts)
	}

	return candidates
}

// buildSlots вычисляет для каждого кандидата времени список свободных
// ресурсов достаточной вместимости. Слот доступен, если такой ресурс есть.
func buildSlots(
	candidates []types.TimeString,
	resources []*domain.Resource,
	bookings []*domain.Booking,
	partySize int,
	policy *domain.VenuePolicy,
) []domain.AvailableSlot {
	// Группируем активные бронирования по ресурсу; бронирования без
	// назначенного ресурса не занимают ни один конкретный стол
	byResource := make(map[int64][]*domain.Booking)
	for _, b := range bookings {
		if !b.IsActive() || b.ResourceID == nil {
			continue
		}
		byResource[*b.ResourceID] = append(byResource[*b.ResourceID], b)
	}

	slots := make([]domain.AvailableSlot, len(candidates))
	for i, t := range candidates {
		candidateIDs := make([]int64, 0)

		for _, resource := range resources {
			if !resource.CanSeat(partySize) {
				continue
			}
			if resourceIsFree(resource.ID, t, byResource, policy) {
				candidateIDs = append(candidateIDs, resource.ID)
			}
		}

		slots[i] = domain.AvailableSlot{
			StartTime:            t,
			Available:            len(candidateIDs) > 0,
			CandidateResourceIDs: candidateIDs,
		}
	}

	return slots
}

// unassignedSlots строит слоты для негабаритной группы: бронирование будет
// создано без назначения ресурса, поэтому каждый кандидат времени доступен,
// а список ресурсов-кандидатов пуст
func unassignedSlots(candidates []types.TimeString) []domain.AvailableSlot {
	slots := make([]domain.AvailableSlot, len(candidates))
	for i, t := range candidates {
		slots[i] = domain.AvailableSlot{
			StartTime:            t,
			Available:            true,
			CandidateResourceIDs: []int64{},
		}
	}
	return slots
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

// resourceIsFree проверяет, что ни одно активное бронирование ресурса не
// пересекается с эффективным интервалом слота.
//
// Интервалы полуоткрытые, тест на пересечение строгий:
// aStart < bEnd && bStart < aEnd. Граничащие интервалы не пересекаются:
// бронирование, заканчивающееся (с буфером) ровно в начале слота, слот не блокирует.
func resourceIsFree(
	resourceID int64,
	slotStart types.TimeString,
	byResource map[int64][]*domain.Booking,
	policy *domain.VenuePolicy,
) bool {
	aStart := slotStart.Minutes()
	aEnd := aStart + policy.EffectiveDurationMinutes()

	for _, booking := range byResource[resourceID] {
		bStart := booking.StartTime.Minutes()
		bEnd := bStart + booking.DurationMinutes + policy.BufferMinutes

		if aStart < bEnd && bStart < aEnd {
			return false
		}
	}

	return true
}
