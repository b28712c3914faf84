package clinic

import (
	"fmt"
	"strings"
)

// Location is a clinic site. County and zip ride along for the location
// report ordering and provider rendering.
type Location struct {
	City   string
	County string
	Zip    string
}

var locations = []Location{
	{"BRIDGEWATER", "Somerset", "08807"},
	{"CLARK", "Union", "07066"},
	{"EDISON", "Middlesex", "08817"},
	{"MORRISTOWN", "Morris", "07960"},
	{"PISCATAWAY", "Middlesex", "08854"},
	{"PRINCETON", "Mercer", "08542"},
}

// Locations returns the fixed clinic site table.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)
	return out
}

// LocationNames returns the city names of the fixed site table.
func LocationNames() []string {
	out := make([]string, len(locations))
	for i, loc := range locations {
		out[i] = loc.City
	}
	return out
}

// ParseLocation resolves a city name, case-insensitively.
func ParseLocation(name string) (Location, error) {
	for _, loc := range locations {
		if strings.EqualFold(loc.City, name) {
			return loc, nil
		}
	}
	return Location{}, fmt.Errorf("%w: unknown location %q", ErrInvalidProvider, name)
}

func (l Location) String() string {
	return fmt.Sprintf("%s, %s %s", l.City, l.County, l.Zip)
}

// Specialty carries the flat per-visit charge for a doctor.
type Specialty string

const (
	Family       Specialty = "FAMILY"
	Pediatrician Specialty = "PEDIATRICIAN"
	Allergist    Specialty = "ALLERGIST"
)

// Charge is the fixed per-visit fee in whole dollars.
func (s Specialty) Charge() int {
	switch s {
	case Family:
		return 250
	case Pediatrician:
		return 300
	case Allergist:
		return 350
	}
	return 0
}

// ParseSpecialty resolves a specialty name, case-insensitively.
func ParseSpecialty(name string) (Specialty, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case string(Family):
		return Family, nil
	case string(Pediatrician):
		return Pediatrician, nil
	case string(Allergist):
		return Allergist, nil
	}
	return "", fmt.Errorf("%w: unknown specialty %q", ErrInvalidProvider, name)
}

// Room is one of the three imaging modalities, scoped to a technician's
// location.
type Room string

const (
	XRay       Room = "XRAY"
	CatScan    Room = "CATSCAN"
	Ultrasound Room = "ULTRASOUND"
)

func ParseRoom(name string) (Room, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case string(XRay):
		return XRay, nil
	case string(CatScan):
		return CatScan, nil
	case string(Ultrasound):
		return Ultrasound, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRoom, name)
}

// Provider is the closed set {Doctor, Technician}. Both variants share a
// profile, a location, and a flat per-visit charge.
type Provider interface {
	Profile() Profile
	Location() Location
	Charge() int
	String() string
}

type Doctor struct {
	profile   Profile
	location  Location
	specialty Specialty
	npi       string
}

func NewDoctor(profile Profile, location Location, specialty Specialty, npi string) *Doctor {
	return &Doctor{profile: profile, location: location, specialty: specialty, npi: npi}
}

func (d *Doctor) Profile() Profile    { return d.profile }
func (d *Doctor) Location() Location  { return d.location }
func (d *Doctor) Charge() int         { return d.specialty.Charge() }
func (d *Doctor) Specialty() Specialty { return d.specialty }
func (d *Doctor) NPI() string         { return d.npi }

func (d *Doctor) String() string {
	return fmt.Sprintf("[%s, %s][%s, #%s]", d.profile, d.location, d.specialty, d.npi)
}

// Technician handles imaging visits and bills the hourly rate as a flat
// per-visit amount.
type Technician struct {
	profile  Profile
	location Location
	rate     int
}

func NewTechnician(profile Profile, location Location, rate int) *Technician {
	return &Technician{profile: profile, location: location, rate: rate}
}

func (t *Technician) Profile() Profile   { return t.profile }
func (t *Technician) Location() Location { return t.location }
func (t *Technician) Charge() int        { return t.rate }
func (t *Technician) Rate() int          { return t.rate }

func (t *Technician) String() string {
	return fmt.Sprintf("[%s, %s][rate: $%d.00]", t.profile, t.location, t.rate)
}

// SameProvider reports whether two providers are the same person: same
// variant and equal profiles.
func SameProvider(a, b Provider) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch a.(type) {
	case *Doctor:
		if _, ok := b.(*Doctor); !ok {
			return false
		}
	case *Technician:
		if _, ok := b.(*Technician); !ok {
			return false
		}
	}
	return a.Profile().Equal(b.Profile())
}
