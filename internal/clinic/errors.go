package clinic

import "errors"

// Every rejected operation returns one of these kinds, wrapped with detail.
// A rejection never leaves a partial write behind.
var (
	ErrInvalidDate         = errors.New("invalid calendar date")
	ErrDatePastOrToday     = errors.New("date is today or in the past")
	ErrDateOnWeekend       = errors.New("date falls on a weekend")
	ErrDateBeyondSixMonths = errors.New("date is beyond six months from today")
	ErrInvalidDOB          = errors.New("invalid date of birth")

	ErrDuplicateBooking    = errors.New("patient already has a booking at that time")
	ErrProviderUnavailable = errors.New("provider is not available at that time")
	ErrNoTechnician        = errors.New("no technician available")
	ErrNotFound            = errors.New("appointment does not exist")
	ErrSlotOccupied        = errors.New("patient already booked at the new timeslot")

	ErrInvalidSlot     = errors.New("invalid timeslot")
	ErrInvalidProvider = errors.New("invalid provider selection")
	ErrInvalidRoom     = errors.New("invalid imaging room")
)
