package clinic

import (
	"fmt"
	"strings"
)

// Profile is the patient key: first name, last name, date of birth.
// It is not a unique ID; two real patients sharing all three fields
// collide by design. Name comparison is case-insensitive, rendering keeps
// the entered casing.
type Profile struct {
	First string
	Last  string
	DOB   Date
}

func NewProfile(first, last string, dob Date) Profile {
	return Profile{First: strings.TrimSpace(first), Last: strings.TrimSpace(last), DOB: dob}
}

func (p Profile) Equal(o Profile) bool {
	return strings.EqualFold(p.First, o.First) &&
		strings.EqualFold(p.Last, o.Last) &&
		p.DOB.Equal(o.DOB)
}

// Compare orders profiles by last name, first name, then date of birth,
// the ordering used for billing grouping.
func (p Profile) Compare(o Profile) int {
	if c := strings.Compare(strings.ToLower(p.Last), strings.ToLower(o.Last)); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(p.First), strings.ToLower(o.First)); c != 0 {
		return c
	}
	return p.DOB.Compare(o.DOB)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s %s %s", p.First, p.Last, p.DOB)
}
