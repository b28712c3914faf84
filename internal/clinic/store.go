package clinic

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Visit is one booked appointment. Room is set only on imaging visits.
// A visit is addressed by (patient, date, slot) for existence checks and
// by (provider, date, slot) for availability checks; the ID exists for
// callers that need a handle to hand back over the wire.
type Visit struct {
	ID       uuid.UUID
	Date     Date
	Slot     Timeslot
	Patient  Profile
	Provider Provider
	Room     Room
}

func (v *Visit) IsImaging() bool { return v.Room != "" }

// Store is the insertion-ordered collection of every booking, with a
// secondary slice holding only imaging visits, kept in sync. The store
// owns its records.
type Store struct {
	visits  []*Visit
	imaging []*Visit
}

func NewStore() *Store { return &Store{} }

func (s *Store) Len() int { return len(s.visits) }

// Visits returns the bookings in insertion order. The slice is a copy; the
// records are shared and must not be mutated by callers.
func (s *Store) Visits() []*Visit {
	out := make([]*Visit, len(s.visits))
	copy(out, s.visits)
	return out
}

// Imaging returns only the imaging bookings, in insertion order.
func (s *Store) Imaging() []*Visit {
	out := make([]*Visit, len(s.imaging))
	copy(out, s.imaging)
	return out
}

func (s *Store) add(v *Visit) {
	s.visits = append(s.visits, v)
	if v.IsImaging() {
		s.imaging = append(s.imaging, v)
	}
}

func (s *Store) remove(v *Visit) {
	s.visits = removeVisit(s.visits, v)
	if v.IsImaging() {
		s.imaging = removeVisit(s.imaging, v)
	}
}

func removeVisit(visits []*Visit, v *Visit) []*Visit {
	for i, cur := range visits {
		if cur == v {
			return append(visits[:i], visits[i+1:]...)
		}
	}
	return visits
}

// Conflict predicates. Each is a pure function of a store snapshot and a
// key: deterministic, no hidden state.

func findPatientVisit(visits []*Visit, patient Profile, date Date, slot Timeslot) *Visit {
	for _, v := range visits {
		if v.Patient.Equal(patient) && v.Date.Equal(date) && v.Slot.Equal(slot) {
			return v
		}
	}
	return nil
}

func findProviderVisit(visits []*Visit, provider Provider, date Date, slot Timeslot) *Visit {
	for _, v := range visits {
		if SameProvider(v.Provider, provider) && v.Date.Equal(date) && v.Slot.Equal(slot) {
			return v
		}
	}
	return nil
}

func technicianBusy(imaging []*Visit, tech *Technician, date Date, slot Timeslot) bool {
	return findProviderVisit(imaging, tech, date, slot) != nil
}

func roomOccupied(imaging []*Visit, loc Location, date Date, slot Timeslot, room Room) bool {
	for _, v := range imaging {
		if v.Provider.Location() == loc && v.Date.Equal(date) && v.Slot.Equal(slot) && v.Room == room {
			return true
		}
	}
	return false
}

// Scheduler is the booking engine: the store, the technician rotation, and
// the clock, bundled as one explicit context object. It is single-caller;
// any concurrent deployment must serialize access to the whole Scheduler as
// one unit, since a booking observes both the store and the rotation
// cursor.
type Scheduler struct {
	store    *Store
	rotation *Rotation
	now      func() time.Time
}

// NewScheduler builds a scheduler over an empty store. A nil clock means
// time.Now.
func NewScheduler(rotation *Rotation, clock func() time.Time) *Scheduler {
	if clock == nil {
		clock = time.Now
	}
	if rotation == nil {
		rotation = NewRotation(nil)
	}
	return &Scheduler{store: NewStore(), rotation: rotation, now: clock}
}

func (s *Scheduler) Store() *Store       { return s.store }
func (s *Scheduler) Rotation() *Rotation { return s.rotation }

func (s *Scheduler) today() Date { return DateOf(s.now()) }

func (s *Scheduler) checkBookingInputs(date Date, patient Profile) error {
	if err := ValidateAppointmentDate(date, s.today()); err != nil {
		return err
	}
	return ValidateDOB(patient.DOB, s.today())
}

// BookDoctor books an office visit. It rejects a duplicate booking for the
// patient and a double-booked doctor; otherwise the visit is appended.
func (s *Scheduler) BookDoctor(date Date, slot Timeslot, patient Profile, doctor *Doctor) (*Visit, error) {
	if doctor == nil {
		return nil, fmt.Errorf("%w: no doctor given", ErrInvalidProvider)
	}
	if err := s.checkBookingInputs(date, patient); err != nil {
		return nil, err
	}
	if findPatientVisit(s.store.visits, patient, date, slot) != nil {
		return nil, fmt.Errorf("%w: %s at %s %s", ErrDuplicateBooking, patient, date, slot)
	}
	if findProviderVisit(s.store.visits, doctor, date, slot) != nil {
		return nil, fmt.Errorf("%w: %s at %s", ErrProviderUnavailable, doctor, slot)
	}
	v := &Visit{ID: uuid.New(), Date: date, Slot: slot, Patient: patient, Provider: doctor}
	s.store.add(v)
	return v, nil
}

// BookImaging books an imaging visit, assigning a technician from the
// rotation. The duplicate check runs against the imaging collection only.
func (s *Scheduler) BookImaging(date Date, slot Timeslot, patient Profile, room Room) (*Visit, error) {
	if _, err := ParseRoom(string(room)); err != nil {
		return nil, err
	}
	if err := s.checkBookingInputs(date, patient); err != nil {
		return nil, err
	}
	if findPatientVisit(s.store.imaging, patient, date, slot) != nil {
		return nil, fmt.Errorf("%w: %s at %s %s", ErrDuplicateBooking, patient, date, slot)
	}
	tech := s.rotation.FindAvailable(s.store.imaging, date, slot, room)
	if tech == nil {
		return nil, fmt.Errorf("%w: for %s at %s", ErrNoTechnician, room, slot)
	}
	v := &Visit{ID: uuid.New(), Date: date, Slot: slot, Patient: patient, Provider: tech, Room: room}
	s.store.add(v)
	return v, nil
}

// Cancel removes the exact (patient, date, slot) booking and returns it.
func (s *Scheduler) Cancel(date Date, slot Timeslot, patient Profile) (*Visit, error) {
	v := findPatientVisit(s.store.visits, patient, date, slot)
	if v == nil {
		return nil, fmt.Errorf("%w: %s %s %s", ErrNotFound, date, slot, patient)
	}
	s.store.remove(v)
	return v, nil
}

// Reschedule moves an existing booking on the same date to a new slot. The
// record keeps its identity; only the slot changes.
func (s *Scheduler) Reschedule(date Date, oldSlot, newSlot Timeslot, patient Profile) (*Visit, error) {
	v := findPatientVisit(s.store.visits, patient, date, oldSlot)
	if v == nil {
		return nil, fmt.Errorf("%w: %s %s %s", ErrNotFound, date, oldSlot, patient)
	}
	if findPatientVisit(s.store.visits, patient, date, newSlot) != nil {
		return nil, fmt.Errorf("%w: %s at %s %s", ErrSlotOccupied, patient, date, newSlot)
	}
	if other := findProviderVisit(s.store.visits, v.Provider, date, newSlot); other != nil && other != v {
		return nil, fmt.Errorf("%w: %s at %s", ErrProviderUnavailable, v.Provider, newSlot)
	}
	v.Slot = newSlot
	return v, nil
}
