package domain

import "github.com/m04kA/SMC-ReservationService/pkg/types"

// AvailableSlot represents a candidate start time with the resources that
// are free and capacity-sufficient for it
type AvailableSlot struct {
	StartTime            types.TimeString
	Available            bool
	CandidateResourceIDs []int64
}

// HasCandidates returns true if at least one resource can take the slot
func (s *AvailableSlot) HasCandidates() bool {
	return len(s.CandidateResourceIDs) > 0
}
