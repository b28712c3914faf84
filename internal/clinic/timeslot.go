package clinic

import "fmt"

// Timeslot is one of the clinic's twelve half-hour slots, held as a
// 24-hour (hour, minute) pair. Only values produced by ParseSlot are
// bookable.
type Timeslot struct {
	Hour   int
	Minute int
}

// The catalog, in chronological order. Labels are matched exactly; there is
// no fuzzy parsing.
var slotCatalog = []struct {
	label string
	slot  Timeslot
}{
	{"9:00 AM", Timeslot{9, 0}},
	{"9:30 AM", Timeslot{9, 30}},
	{"10:00 AM", Timeslot{10, 0}},
	{"10:30 AM", Timeslot{10, 30}},
	{"11:00 AM", Timeslot{11, 0}},
	{"11:30 AM", Timeslot{11, 30}},
	{"2:00 PM", Timeslot{14, 0}},
	{"2:30 PM", Timeslot{14, 30}},
	{"3:00 PM", Timeslot{15, 0}},
	{"3:30 PM", Timeslot{15, 30}},
	{"4:00 PM", Timeslot{16, 0}},
	{"4:30 PM", Timeslot{16, 30}},
}

// ParseSlot resolves a catalog label to its timeslot.
func ParseSlot(label string) (Timeslot, error) {
	for _, entry := range slotCatalog {
		if entry.label == label {
			return entry.slot, nil
		}
	}
	return Timeslot{}, fmt.Errorf("%w: %q", ErrInvalidSlot, label)
}

// SlotLabels returns the twelve labels in chronological order.
func SlotLabels() []string {
	labels := make([]string, len(slotCatalog))
	for i, entry := range slotCatalog {
		labels[i] = entry.label
	}
	return labels
}

// Compare orders timeslots chronologically.
func (t Timeslot) Compare(o Timeslot) int {
	switch {
	case t.Hour != o.Hour:
		if t.Hour < o.Hour {
			return -1
		}
		return 1
	case t.Minute != o.Minute:
		if t.Minute < o.Minute {
			return -1
		}
		return 1
	}
	return 0
}

func (t Timeslot) Equal(o Timeslot) bool { return t == o }

// String renders 12-hour time with a zero-padded minute. Hours 0 and 12
// both display as "12" per 12-hour clock convention.
func (t Timeslot) String() string {
	period := "AM"
	if t.Hour >= 12 {
		period = "PM"
	}
	display := t.Hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, t.Minute, period)
}
