package clinic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Roster is the loaded provider directory. Technicians are kept in
// rotation order, which is the reverse of file order: the original system
// builds its ring by prepending each technician as it is read.
type Roster struct {
	Providers   []Provider
	Doctors     []*Doctor
	Technicians []*Technician
}

// DoctorByNPI finds a doctor by license number, or nil.
func (r *Roster) DoctorByNPI(npi string) *Doctor {
	for _, d := range r.Doctors {
		if d.NPI() == npi {
			return d
		}
	}
	return nil
}

// LoadRoster reads a provider file: one provider per line, fields separated
// by two spaces, first field "D" or "T".
//
//	D  First  Last  M/D/YYYY  LOCATION  SPECIALTY  NPI
//	T  First  Last  M/D/YYYY  LOCATION  RATE
//
// Malformed lines are skipped; the roster built from the good lines is
// returned along with the joined per-line errors.
func LoadRoster(r io.Reader) (*Roster, error) {
	roster := &Roster{}
	var lineErrs []error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := roster.addLine(line); err != nil {
			lineErrs = append(lineErrs, fmt.Errorf("line %d: %w", lineNo, err))
		}
	}
	if err := scanner.Err(); err != nil {
		return roster, fmt.Errorf("read roster: %w", err)
	}
	return roster, errors.Join(lineErrs...)
}

// LoadRosterFile opens and parses a roster file.
func LoadRosterFile(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	return LoadRoster(f)
}

func (r *Roster) addLine(line string) error {
	fields := strings.Split(line, "  ")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	switch fields[0] {
	case "D":
		if len(fields) != 7 {
			return fmt.Errorf("doctor line needs 7 fields, got %d", len(fields))
		}
		dob, err := ParseDate(fields[3])
		if err != nil {
			return err
		}
		loc, err := ParseLocation(fields[4])
		if err != nil {
			return err
		}
		spec, err := ParseSpecialty(fields[5])
		if err != nil {
			return err
		}
		doc := NewDoctor(NewProfile(fields[1], fields[2], dob), loc, spec, fields[6])
		r.Providers = append(r.Providers, doc)
		r.Doctors = append(r.Doctors, doc)
	case "T":
		if len(fields) != 6 {
			return fmt.Errorf("technician line needs 6 fields, got %d", len(fields))
		}
		dob, err := ParseDate(fields[3])
		if err != nil {
			return err
		}
		loc, err := ParseLocation(fields[4])
		if err != nil {
			return err
		}
		rate, err := strconv.Atoi(fields[5])
		if err != nil || rate < 0 {
			return fmt.Errorf("bad rate %q", fields[5])
		}
		tech := NewTechnician(NewProfile(fields[1], fields[2], dob), loc, rate)
		r.Providers = append(r.Providers, tech)
		// prepend: ring order is reverse file order
		r.Technicians = append([]*Technician{tech}, r.Technicians...)
	default:
		return fmt.Errorf("unknown provider type %q", fields[0])
	}
	return nil
}

// SortedProviders returns the directory ordered by last name, the order
// the provider listing prints in.
func (r *Roster) SortedProviders() []Provider {
	out := make([]Provider, len(r.Providers))
	copy(out, r.Providers)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Profile().Compare(out[j].Profile()) < 0
	})
	return out
}
