package clinic

import "strings"

// Rotation assigns technicians round-robin. The ring is a fixed slice with
// a modulo-advancing cursor; the cursor always marks the next technician to
// try first, and every successful assignment advances it past the assigned
// technician so later requests start elsewhere in the ring.
type Rotation struct {
	techs  []*Technician
	cursor int
}

func NewRotation(techs []*Technician) *Rotation {
	ring := make([]*Technician, len(techs))
	copy(ring, techs)
	return &Rotation{techs: ring}
}

func (r *Rotation) Len() int { return len(r.techs) }

// Technicians returns the ring in rotation order starting from the first
// node, independent of the cursor.
func (r *Rotation) Technicians() []*Technician {
	out := make([]*Technician, len(r.techs))
	copy(out, r.techs)
	return out
}

// FindAvailable selects a technician for an imaging visit at (date, slot,
// room), or nil when the whole ring is busy or the room is occupied at
// every technician's site.
//
// With no imaging visits on file yet there is nothing to conflict with, so
// the technician at the cursor is taken directly. Otherwise the ring is
// walked from the cursor; the first technician who is free at (date, slot)
// and whose site has the requested room open is selected. A single pass
// over the ring bounds the scan, so rings of size zero or one terminate.
func (r *Rotation) FindAvailable(imaging []*Visit, date Date, slot Timeslot, room Room) *Technician {
	if len(r.techs) == 0 {
		return nil
	}
	if len(imaging) == 0 {
		tech := r.techs[r.cursor]
		r.cursor = (r.cursor + 1) % len(r.techs)
		return tech
	}
	for i := 0; i < len(r.techs); i++ {
		idx := (r.cursor + i) % len(r.techs)
		tech := r.techs[idx]
		if technicianBusy(imaging, tech, date, slot) {
			continue
		}
		if roomOccupied(imaging, tech.Location(), date, slot, room) {
			continue
		}
		r.cursor = (idx + 1) % len(r.techs)
		return tech
	}
	return nil
}

// Display renders the ring as "FIRST LAST (CITY) --> ..." starting from the
// first node.
func (r *Rotation) Display() string {
	if len(r.techs) == 0 {
		return "List is empty."
	}
	parts := make([]string, len(r.techs))
	for i, tech := range r.techs {
		p := tech.Profile()
		parts[i] = strings.ToUpper(p.First) + " " + strings.ToUpper(p.Last) +
			" (" + tech.Location().City + ")"
	}
	return strings.Join(parts, " --> ")
}
