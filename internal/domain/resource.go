package domain

import "time"

// Resource represents a bookable physical unit (table, room, chair)
// Invariant: Capacity >= 1.
type Resource struct {
	ID         int64
	VenueID    int64
	Name       string
	Capacity   int
	Combinable bool
	IsActive   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanSeat returns true if the resource accommodates the party size
func (r *Resource) CanSeat(partySize int) bool {
	return r.IsActive && r.Capacity >= partySize
}

// MaxCapacity возвращает максимальную вместимость среди активных ресурсов
// Для пустого списка возвращает 0
func MaxCapacity(resources []*Resource) int {
	maxCap := 0
	for _, r := range resources {
		if r.IsActive && r.Capacity > maxCap {
			maxCap = r.Capacity
		}
	}
	return maxCap
}
