package clinic

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date is a plain Gregorian civil date. It is a value type: construct it,
// compare it, never mutate it. time.Time is deliberately not used as the
// representation because it normalizes invalid dates (Feb 30 becomes Mar 2)
// and would make IsValid unanswerable.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate builds a Date without validating it. Call IsValid before trusting
// the result.
func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// ParseDate parses the M/D/YYYY format used by roster files and the wire.
func ParseDate(s string) (Date, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 3 {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	year, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	d := NewDate(year, month, day)
	if !d.IsValid() {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DateOf truncates a wall-clock instant to its civil date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

var daysInMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// IsValid reports whether the date exists on the Gregorian calendar,
// with Feb 29 allowed only in leap years.
func (d Date) IsValid() bool {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	max := daysInMonth[d.Month]
	if d.Month == 2 && isLeapYear(d.Year) {
		max = 29
	}
	return d.Day <= max
}

// Compare orders dates by (year, month, day). It returns -1, 0, or 1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		if d.Year < o.Year {
			return -1
		}
		return 1
	case d.Month != o.Month:
		if d.Month < o.Month {
			return -1
		}
		return 1
	case d.Day != o.Day:
		if d.Day < o.Day {
			return -1
		}
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d.Compare(o) == 0 }

func (d Date) civil() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// OnWeekend reports whether a valid date falls on Saturday or Sunday.
func (d Date) OnWeekend() bool {
	wd := d.civil().Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// WithinSixMonthsOf reports whether the date lies in the forward window
// [today, today+6 calendar months]. The six-month boundary date itself
// counts.
func (d Date) WithinSixMonthsOf(today Date) bool {
	limit := DateOf(today.civil().AddDate(0, 6, 0))
	return !d.Before(today) && !d.After(limit)
}

// String renders M/D/YYYY without zero padding, the format the original
// roster files and reports use.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

// ValidateAppointmentDate applies the clinic calendar policy: the date must
// be a real date, strictly after today, on a weekday, and no more than six
// months out.
func ValidateAppointmentDate(d, today Date) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %s is not a valid calendar date", ErrInvalidDate, d)
	}
	if d.Before(today) || d.Equal(today) {
		return fmt.Errorf("%w: %s is today or a date before today", ErrDatePastOrToday, d)
	}
	if d.OnWeekend() {
		return fmt.Errorf("%w: %s is Saturday or Sunday", ErrDateOnWeekend, d)
	}
	if !d.WithinSixMonthsOf(today) {
		return fmt.Errorf("%w: %s is not within six months", ErrDateBeyondSixMonths, d)
	}
	return nil
}

// ValidateDOB checks a date of birth: a real date strictly before today.
func ValidateDOB(d, today Date) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %s is not a valid calendar date", ErrInvalidDOB, d)
	}
	if d.Equal(today) || d.After(today) {
		return fmt.Errorf("%w: %s is today or a future date", ErrInvalidDOB, d)
	}
	return nil
}
