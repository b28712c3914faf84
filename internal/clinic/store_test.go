package clinic

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// Fixed clock for every scheduler test: Wednesday, Jan 15 2025.
func testClock() time.Time {
	return time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
}

var (
	apptDate = NewDate(2025, 1, 21) // a valid future Tuesday
	nineAM   = mustSlot("9:00 AM")
	tenAM    = mustSlot("10:00 AM")
)

func mustSlot(label string) Timeslot {
	slot, err := ParseSlot(label)
	if err != nil {
		panic(err)
	}
	return slot
}

func testDoctor(first, last, npi string, spec Specialty) *Doctor {
	loc, _ := ParseLocation("CLARK")
	return NewDoctor(NewProfile(first, last, NewDate(1970, 2, 2)), loc, spec, npi)
}

func testTech(first, last, city string, rate int) *Technician {
	loc, err := ParseLocation(city)
	if err != nil {
		panic(err)
	}
	return NewTechnician(NewProfile(first, last, NewDate(1980, 3, 3)), loc, rate)
}

func newTestScheduler(techs ...*Technician) *Scheduler {
	return NewScheduler(NewRotation(techs), testClock)
}

func TestBookDoctorDuplicatePatient(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	if _, err := s.BookDoctor(apptDate, nineAM, patient, doc); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := s.BookDoctor(apptDate, nineAM, patient, doc)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("second booking error = %v, want ErrDuplicateBooking", err)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("store has %d records, want 1", s.Store().Len())
	}
}

func TestBookDoctorProviderDoubleBooked(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	alice := NewProfile("Alice", "Ames", NewDate(1990, 4, 4))
	bob := NewProfile("Bob", "Burke", NewDate(1991, 5, 5))

	if _, err := s.BookDoctor(apptDate, nineAM, alice, doc); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}
	_, err := s.BookDoctor(apptDate, nineAM, bob, doc)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("double-booked doctor error = %v, want ErrProviderUnavailable", err)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("rejected booking wrote to the store")
	}
}

func TestBookDoctorCalendarPolicy(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	tests := []struct {
		name    string
		date    Date
		wantErr error
	}{
		{"today", NewDate(2025, 1, 15), ErrDatePastOrToday},
		{"past", NewDate(2024, 12, 1), ErrDatePastOrToday},
		{"weekend", NewDate(2025, 1, 18), ErrDateOnWeekend},
		{"too far out", NewDate(2025, 8, 1), ErrDateBeyondSixMonths},
		{"not a date", NewDate(2025, 2, 30), ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.BookDoctor(tt.date, nineAM, patient, doc)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
	if s.Store().Len() != 0 {
		t.Fatal("rejected bookings must not write to the store")
	}
}

func TestBookDoctorRejectsBadDOB(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	_, err := s.BookDoctor(apptDate, nineAM, NewProfile("Kid", "Future", NewDate(2030, 1, 1)), doc)
	if !errors.Is(err, ErrInvalidDOB) {
		t.Fatalf("future DOB error = %v, want ErrInvalidDOB", err)
	}
}

func TestCancel(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	if _, err := s.Cancel(apptDate, nineAM, patient); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cancel on empty store = %v, want ErrNotFound", err)
	}

	if _, err := s.BookDoctor(apptDate, nineAM, patient, doc); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := s.Cancel(apptDate, nineAM, patient); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if s.Store().Len() != 0 {
		t.Fatalf("store has %d records after cancel, want 0", s.Store().Len())
	}
	if _, err := s.Cancel(apptDate, nineAM, patient); !errors.Is(err, ErrNotFound) {
		t.Fatalf("repeat cancel = %v, want ErrNotFound", err)
	}
}

func TestCancelImagingRemovesFromBothCollections(t *testing.T) {
	s := newTestScheduler(testTech("Ana", "Lee", "CLARK", 150))
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	if _, err := s.BookImaging(apptDate, nineAM, patient, XRay); err != nil {
		t.Fatalf("imaging booking failed: %v", err)
	}
	if _, err := s.Cancel(apptDate, nineAM, patient); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if len(s.Store().Imaging()) != 0 {
		t.Fatal("imaging sub-collection out of sync after cancel")
	}
}

func TestReschedule(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	booked, err := s.BookDoctor(apptDate, nineAM, patient, doc)
	if err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	moved, err := s.Reschedule(apptDate, nineAM, tenAM, patient)
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if moved != booked {
		t.Fatal("reschedule must keep the record's identity")
	}
	if !moved.Slot.Equal(tenAM) {
		t.Fatalf("slot = %v, want %v", moved.Slot, tenAM)
	}
}

func TestRescheduleMissingBooking(t *testing.T) {
	s := newTestScheduler()
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))
	if _, err := s.Reschedule(apptDate, nineAM, tenAM, patient); !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestRescheduleToOccupiedSlot(t *testing.T) {
	s := newTestScheduler()
	docA := testDoctor("Lim", "Smith", "NPI123", Family)
	docB := testDoctor("Gary", "Johnson", "NPI456", Allergist)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	if _, err := s.BookDoctor(apptDate, nineAM, patient, docA); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := s.BookDoctor(apptDate, tenAM, patient, docB); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err := s.Reschedule(apptDate, nineAM, tenAM, patient)
	if !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("error = %v, want ErrSlotOccupied", err)
	}
	// The original booking must be intact.
	if v := findPatientVisit(s.Store().Visits(), patient, apptDate, nineAM); v == nil {
		t.Fatal("original booking lost after rejected reschedule")
	}
}

func TestRescheduleProviderConflict(t *testing.T) {
	s := newTestScheduler()
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	joe := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))
	mia := NewProfile("Mia", "Moore", NewDate(1999, 9, 9))

	if _, err := s.BookDoctor(apptDate, nineAM, joe, doc); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if _, err := s.BookDoctor(apptDate, tenAM, mia, doc); err != nil {
		t.Fatalf("booking failed: %v", err)
	}

	_, err := s.Reschedule(apptDate, nineAM, tenAM, joe)
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("error = %v, want ErrProviderUnavailable", err)
	}
}

func TestBookImagingDuplicateChecksImagingOnly(t *testing.T) {
	s := newTestScheduler(testTech("Ana", "Lee", "CLARK", 150))
	doc := testDoctor("Lim", "Smith", "NPI123", Family)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	// A doctor visit at the same (date, slot) does not block an imaging
	// booking; the duplicate check runs against the imaging collection.
	if _, err := s.BookDoctor(apptDate, nineAM, patient, doc); err != nil {
		t.Fatalf("doctor booking failed: %v", err)
	}
	if _, err := s.BookImaging(apptDate, nineAM, patient, XRay); err != nil {
		t.Fatalf("imaging booking failed: %v", err)
	}
	_, err := s.BookImaging(apptDate, nineAM, patient, CatScan)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("second imaging booking = %v, want ErrDuplicateBooking", err)
	}
}

func TestBookImagingRejectsBadRoom(t *testing.T) {
	s := newTestScheduler(testTech("Ana", "Lee", "CLARK", 150))
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))
	if _, err := s.BookImaging(apptDate, nineAM, patient, Room("MRI")); !errors.Is(err, ErrInvalidRoom) {
		t.Fatalf("error = %v, want ErrInvalidRoom", err)
	}
}

func TestEndToEndRosterScenario(t *testing.T) {
	rosterText := "D  Lim  Smith  2/2/1970  CLARK  FAMILY  NPI123\n" +
		"T  Ana  Lee  3/3/1980  CLARK  150\n"
	roster, err := LoadRoster(strings.NewReader(rosterText))
	if err != nil {
		t.Fatalf("LoadRoster: %v", err)
	}
	doc := roster.DoctorByNPI("NPI123")
	if doc == nil {
		t.Fatal("doctor NPI123 not loaded")
	}

	s := NewScheduler(NewRotation(roster.Technicians), testClock)
	patient := NewProfile("Joe", "Patient", NewDate(2000, 1, 1))

	if _, err := s.BookDoctor(apptDate, nineAM, patient, doc); err != nil {
		t.Fatalf("booking failed: %v", err)
	}
	if s.Store().Len() != 1 {
		t.Fatalf("store has %d records, want 1", s.Store().Len())
	}
	_, err = s.BookDoctor(apptDate, nineAM, patient, doc)
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("identical booking = %v, want ErrDuplicateBooking", err)
	}
}
