package domain

import "time"

// SlotID identifies a bookable time window for the in-person final.
type SlotID string

// NewSlotID generates a fresh slot id.
func NewSlotID() SlotID { return SlotID(newShortID(4)) }

// Places is a count of seats claimed or offered within a slot.
type Places int

// Site is the venue a slot takes place at.
type Site string

// NewSite validates that the venue name is not empty.
func NewSite(s string) (Site, error) {
	if s == "" {
		return "", invalidValue("invalid site: expected not empty string")
	}
	return Site(s), nil
}

// Reservation is one team's claim on places within a slot.
type Reservation struct {
	TeamID TeamID
	Places Places
}

// Slot is a capacity-constrained time window. The reserved count is
// always derived from the reservation list, never stored redundantly.
type Slot struct {
	id           SlotID
	start        time.Time
	site         Site
	capacity     Places
	reservations []Reservation
}

// NewSlot creates an empty slot.
func NewSlot(start time.Time, site Site, capacity Places) *Slot {
	return &Slot{id: NewSlotID(), start: start, site: site, capacity: capacity}
}

// RestoreSlot rebuilds a slot from persisted state.
func RestoreSlot(id SlotID, start time.Time, site Site, capacity Places, reservations []Reservation) *Slot {
	return &Slot{id: id, start: start, site: site, capacity: capacity, reservations: reservations}
}

func (s *Slot) ID() SlotID { return s.id }
func (s *Slot) Start() time.Time { return s.start }
func (s *Slot) Site() Site { return s.site }
func (s *Slot) Capacity() Places { return s.capacity }
func (s *Slot) Reservations() []Reservation { return s.reservations }

// Reserved sums the places claimed by all reservations.
func (s *Slot) Reserved() Places {
	var sum Places
	for _, r := range s.reservations {
		sum += r.Places
	}
	return sum
}

// AvailablePlaces returns how many seats remain.
func (s *Slot) AvailablePlaces() Places {
	if s.Reserved() >= s.capacity {
		return 0
	}
	return s.capacity - s.Reserved()
}

// CanBeReserved reports whether the slot can take the requested places.
func (s *Slot) CanBeReserved(places Places) bool {
	return s.Reserved()+places <= s.capacity
}

// Reserve appends a reservation after the capacity check. Duplicate
// reservations by the same team are not prevented here; the team
// aggregate guards against holding more than one slot.
func (s *Slot) Reserve(teamID TeamID, places Places) error {
	if !s.CanBeReserved(places) {
		return &ErrCanNotReserveSlot{SlotID: s.id, Places: places}
	}
	s.reservations = append(s.reservations, Reservation{TeamID: teamID, Places: places})
	return nil
}

// CancelReservation removes every reservation held by the team.
func (s *Slot) CancelReservation(teamID TeamID) error {
	kept := s.reservations[:0]
	removed := false
	for _, r := range s.reservations {
		if r.TeamID == teamID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return &ErrTeamNotReservedSlot{TeamID: teamID}
	}
	s.reservations = kept
	return nil
}
