package clinic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotationFairness(t *testing.T) {
	a := testTech("Ann", "Abbot", "BRIDGEWATER", 100)
	b := testTech("Ben", "Boone", "CLARK", 110)
	c := testTech("Cam", "Cole", "EDISON", 120)
	s := NewScheduler(NewRotation([]*Technician{a, b, c}), testClock)

	p1 := NewProfile("One", "Patient", NewDate(1990, 1, 1))
	p2 := NewProfile("Two", "Patient", NewDate(1991, 2, 2))
	p3 := NewProfile("Three", "Patient", NewDate(1992, 3, 3))
	p4 := NewProfile("Four", "Patient", NewDate(1993, 4, 4))

	// First booking on an empty imaging store takes the cursor technician.
	v1, err := s.BookImaging(apptDate, nineAM, p1, XRay)
	require.NoError(t, err)
	assert.Same(t, a, v1.Provider)

	// A is now busy at this (date, slot); the next request must get B.
	v2, err := s.BookImaging(apptDate, nineAM, p2, XRay)
	require.NoError(t, err)
	assert.Same(t, b, v2.Provider)

	v3, err := s.BookImaging(apptDate, nineAM, p3, XRay)
	require.NoError(t, err)
	assert.Same(t, c, v3.Provider)

	// All three are busy: only now does the booking fail.
	_, err = s.BookImaging(apptDate, nineAM, p4, XRay)
	assert.True(t, errors.Is(err, ErrNoTechnician), "err = %v", err)
}

func TestRotationCursorAdvancesPastAssigned(t *testing.T) {
	a := testTech("Ann", "Abbot", "BRIDGEWATER", 100)
	b := testTech("Ben", "Boone", "CLARK", 110)
	c := testTech("Cam", "Cole", "EDISON", 120)
	s := NewScheduler(NewRotation([]*Technician{a, b, c}), testClock)

	p1 := NewProfile("One", "Patient", NewDate(1990, 1, 1))
	p2 := NewProfile("Two", "Patient", NewDate(1991, 2, 2))

	v1, err := s.BookImaging(apptDate, nineAM, p1, XRay)
	require.NoError(t, err)
	assert.Same(t, a, v1.Provider)

	// Different slot, so A would also be free; fair rotation still hands
	// the next request to B.
	v2, err := s.BookImaging(apptDate, tenAM, p2, XRay)
	require.NoError(t, err)
	assert.Same(t, b, v2.Provider)
}

func TestRotationRoomOccupancy(t *testing.T) {
	// Two technicians at the same site: once the XRAY room there is in
	// use, the second is skipped over for XRAY at that time.
	a := testTech("Ann", "Abbot", "CLARK", 100)
	b := testTech("Ben", "Boone", "CLARK", 110)
	r := NewRotation([]*Technician{a, b})

	first := &Visit{Date: apptDate, Slot: nineAM, Provider: a, Room: XRay,
		Patient: NewProfile("One", "Patient", NewDate(1990, 1, 1))}
	imaging := []*Visit{first}

	assert.Nil(t, r.FindAvailable(imaging, apptDate, nineAM, XRay))
	// A different room at the same site is still open.
	assert.Same(t, b, r.FindAvailable(imaging, apptDate, nineAM, Ultrasound))
}

func TestRotationDegenerateRings(t *testing.T) {
	empty := NewRotation(nil)
	assert.Nil(t, empty.FindAvailable(nil, apptDate, nineAM, XRay))

	solo := testTech("Ann", "Abbot", "CLARK", 100)
	r := NewRotation([]*Technician{solo})
	assert.Same(t, solo, r.FindAvailable(nil, apptDate, nineAM, XRay))

	busy := []*Visit{{Date: apptDate, Slot: nineAM, Provider: solo, Room: XRay,
		Patient: NewProfile("One", "Patient", NewDate(1990, 1, 1))}}
	// The single node is checked once and the scan terminates.
	assert.Nil(t, r.FindAvailable(busy, apptDate, nineAM, XRay))
}

func TestRotationDisplay(t *testing.T) {
	a := testTech("Ann", "Abbot", "BRIDGEWATER", 100)
	b := testTech("Ben", "Boone", "CLARK", 110)
	r := NewRotation([]*Technician{a, b})
	assert.Equal(t, "ANN ABBOT (BRIDGEWATER) --> BEN BOONE (CLARK)", r.Display())
	assert.Equal(t, "List is empty.", NewRotation(nil).Display())
}
