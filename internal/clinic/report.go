package clinic

import (
	"fmt"
	"sort"
	"strings"
)

// Comparator family over the unified collection. Sorting is always stable,
// so records tied on every listed key keep their insertion order.

func sortedVisits(visits []*Visit, less func(a, b *Visit) bool) []*Visit {
	out := make([]*Visit, len(visits))
	copy(out, visits)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// SortedByAppointment orders by date, then timeslot, then provider last
// name.
func SortedByAppointment(visits []*Visit) []*Visit {
	return sortedVisits(visits, func(a, b *Visit) bool {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if c := a.Slot.Compare(b.Slot); c != 0 {
			return c < 0
		}
		return strings.ToLower(a.Provider.Profile().Last) < strings.ToLower(b.Provider.Profile().Last)
	})
}

// SortedByPatient orders by patient key, then date, then timeslot.
func SortedByPatient(visits []*Visit) []*Visit {
	return sortedVisits(visits, func(a, b *Visit) bool {
		if c := a.Patient.Compare(b.Patient); c != 0 {
			return c < 0
		}
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		return a.Slot.Compare(b.Slot) < 0
	})
}

// SortedByLocation orders by the provider's county, then date, then
// timeslot.
func SortedByLocation(visits []*Visit) []*Visit {
	return sortedVisits(visits, func(a, b *Visit) bool {
		if c := strings.Compare(a.Provider.Location().County, b.Provider.Location().County); c != 0 {
			return c < 0
		}
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		return a.Slot.Compare(b.Slot) < 0
	})
}

// SortedByProfile orders strictly by patient key so equal-key runs are
// contiguous for billing.
func SortedByProfile(visits []*Visit) []*Visit {
	return sortedVisits(visits, func(a, b *Visit) bool {
		return a.Patient.Compare(b.Patient) < 0
	})
}

func formatVisit(v *Visit) string {
	return fmt.Sprintf("%s %s %s %s %s %s",
		v.Date, v.Slot, v.Patient.First, v.Patient.Last, v.Patient.DOB,
		strings.ToUpper(v.Provider.String()))
}

const endOfList = "** end of list **\n"

func renderList(header string, visits []*Visit, keep func(*Visit) bool) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(header)
	b.WriteString("\n")
	for _, v := range visits {
		if keep == nil || keep(v) {
			b.WriteString(formatVisit(v))
			b.WriteString("\n")
		}
	}
	b.WriteString(endOfList)
	return b.String()
}

// formatDollars renders whole dollars as $#,##0.00.
func formatDollars(amount int) string {
	digits := fmt.Sprintf("%d", amount)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(r)
	}
	return "$" + b.String() + ".00"
}

// ReportByAppointment lists every booking ordered by date/time/provider.
func (s *Scheduler) ReportByAppointment() string {
	return renderList("** List of appointments ordered by date/time/provider.",
		SortedByAppointment(s.store.visits), nil)
}

// ReportByPatient lists every booking ordered by patient/date/time.
func (s *Scheduler) ReportByPatient() string {
	return renderList("** Appointments ordered by patient/date/time **",
		SortedByPatient(s.store.visits), nil)
}

// ReportByLocation lists every booking ordered by county/date/time.
func (s *Scheduler) ReportByLocation() string {
	return renderList("** Appointments ordered by county/date/time **",
		SortedByLocation(s.store.visits), nil)
}

// ReportOffice lists only doctor visits, ordered by county/date/time.
func (s *Scheduler) ReportOffice() string {
	return renderList("** List of office appointments ordered by county/date/time.",
		SortedByLocation(s.store.visits), func(v *Visit) bool { return !v.IsImaging() })
}

// ReportImaging lists only imaging visits, ordered by county/date/time.
func (s *Scheduler) ReportImaging() string {
	return renderList("** List of radiology appointments ordered by county/date/time.",
		SortedByLocation(s.store.visits), func(v *Visit) bool { return v.IsImaging() })
}

// ReportCharges renders the billing statement: one line per contiguous
// patient-key run over the profile-sorted collection, with a sequence
// counter that never resets.
func (s *Scheduler) ReportCharges() string {
	if s.store.Len() == 0 {
		return "\nThere are no appointments in the system.\n"
	}
	var b strings.Builder
	b.WriteString("\n** Billing statement ordered by patient **\n")

	counter := 1
	var current *Profile
	total := 0
	flush := func() {
		b.WriteString(fmt.Sprintf("(%d) %s [amount due: %s]\n", counter, current, formatDollars(total)))
		counter++
	}
	for _, v := range SortedByProfile(s.store.visits) {
		if current == nil || !current.Equal(v.Patient) {
			if current != nil {
				flush()
			}
			p := v.Patient
			current = &p
			total = v.Provider.Charge()
		} else {
			total += v.Provider.Charge()
		}
	}
	if current != nil {
		flush()
	}
	b.WriteString(endOfList)
	return b.String()
}

// ReportProviderCredits renders the credit earned by each provider: every
// technician in the rotation plus every doctor appearing in the store,
// ordered by last/first/dob. Providers with no activity are skipped and
// only credited providers are numbered.
func (s *Scheduler) ReportProviderCredits() string {
	var b strings.Builder
	b.WriteString("\n** Credit amount ordered by provider. **\n")

	var providers []Provider
	for _, tech := range s.rotation.Technicians() {
		providers = append(providers, tech)
	}
	for _, v := range s.store.visits {
		doc, ok := v.Provider.(*Doctor)
		if !ok {
			continue
		}
		seen := false
		for _, p := range providers {
			if SameProvider(p, doc) {
				seen = true
				break
			}
		}
		if !seen {
			providers = append(providers, doc)
		}
	}
	sort.SliceStable(providers, func(i, j int) bool {
		return providers[i].Profile().Compare(providers[j].Profile()) < 0
	})

	counter := 1
	for _, p := range providers {
		credit := 0
		for _, v := range s.store.visits {
			if SameProvider(v.Provider, p) {
				credit += p.Charge()
			}
		}
		if credit == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("(%d) %s [credit amount: %s]\n", counter, p.Profile(), formatDollars(credit)))
		counter++
	}
	b.WriteString(endOfList)
	return b.String()
}
