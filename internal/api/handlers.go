package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

// scheduler guards the booking engine. The store and the rotation cursor
// are one consistent unit, so bookings and reports alike run under a
// single mutex.
type scheduler struct {
	mu    sync.Mutex
	sched *clinic.Scheduler
}

func (g *scheduler) lock() func() {
	g.mu.Lock()
	return g.mu.Unlock
}

func visitResponse(v *clinic.Visit) VisitResponse {
	return VisitResponse{
		ID:       v.ID,
		Date:     v.Date.String(),
		Slot:     v.Slot.String(),
		Patient:  v.Patient.String(),
		Provider: v.Provider.String(),
		Room:     string(v.Room),
	}
}

func parsePatient(req PatientRequest) (clinic.Profile, error) {
	if req.FirstName == "" || req.LastName == "" {
		return clinic.Profile{}, errors.New("patient first_name and last_name are required")
	}
	dob, err := clinic.ParseDate(req.DOB)
	if err != nil {
		return clinic.Profile{}, err
	}
	return clinic.NewProfile(req.FirstName, req.LastName, dob), nil
}

func bookDoctorHandler(g *scheduler, roster *clinic.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookDoctorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		date, err := clinic.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		slot, err := clinic.ParseSlot(req.Slot)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}
		patient, err := parsePatient(req.Patient)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
			return
		}
		doctor := roster.DoctorByNPI(req.NPI)
		if doctor == nil {
			writeError(w, http.StatusNotFound, "doctor_not_found", "no doctor with NPI "+req.NPI)
			return
		}

		defer g.lock()()
		visit, err := g.sched.BookDoctor(date, slot, patient, doctor)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, visitResponse(visit))
	}
}

func bookImagingHandler(g *scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BookImagingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		date, err := clinic.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		slot, err := clinic.ParseSlot(req.Slot)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}
		patient, err := parsePatient(req.Patient)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
			return
		}
		room, err := clinic.ParseRoom(req.Room)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_room", err.Error())
			return
		}

		defer g.lock()()
		visit, err := g.sched.BookImaging(date, slot, patient, room)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, visitResponse(visit))
	}
}

func cancelHandler(g *scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CancelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		date, err := clinic.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		slot, err := clinic.ParseSlot(req.Slot)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}
		patient, err := parsePatient(req.Patient)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
			return
		}

		defer g.lock()()
		visit, err := g.sched.Cancel(date, slot, patient)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visitResponse(visit))
	}
}

func rescheduleHandler(g *scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RescheduleRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		date, err := clinic.ParseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
			return
		}
		oldSlot, err := clinic.ParseSlot(req.OldSlot)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}
		newSlot, err := clinic.ParseSlot(req.NewSlot)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_slot", err.Error())
			return
		}
		patient, err := parsePatient(req.Patient)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient", err.Error())
			return
		}

		defer g.lock()()
		visit, err := g.sched.Reschedule(date, oldSlot, newSlot, patient)
		if err != nil {
			handleBookingError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, visitResponse(visit))
	}
}

func listProvidersHandler(g *scheduler, roster *clinic.Roster) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := ProviderListResponse{Rotation: g.sched.Rotation().Display()}
		for _, p := range roster.SortedProviders() {
			pr := ProviderResponse{
				FirstName: p.Profile().First,
				LastName:  p.Profile().Last,
				DOB:       p.Profile().DOB.String(),
				Location:  p.Location().City,
			}
			switch v := p.(type) {
			case *clinic.Doctor:
				pr.Type = "doctor"
				pr.Specialty = string(v.Specialty())
				pr.NPI = v.NPI()
			case *clinic.Technician:
				pr.Type = "technician"
				pr.Rate = v.Rate()
			}
			resp.Providers = append(resp.Providers, pr)
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func listSlotsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, clinic.SlotLabels())
	}
}

func handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, clinic.ErrInvalidDate),
		errors.Is(err, clinic.ErrInvalidDOB),
		errors.Is(err, clinic.ErrInvalidSlot),
		errors.Is(err, clinic.ErrInvalidRoom):
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, clinic.ErrDatePastOrToday):
		writeError(w, http.StatusUnprocessableEntity, "date_past_or_today", err.Error())
	case errors.Is(err, clinic.ErrDateOnWeekend):
		writeError(w, http.StatusUnprocessableEntity, "date_on_weekend", err.Error())
	case errors.Is(err, clinic.ErrDateBeyondSixMonths):
		writeError(w, http.StatusUnprocessableEntity, "date_out_of_range", err.Error())
	case errors.Is(err, clinic.ErrDuplicateBooking):
		writeError(w, http.StatusConflict, "duplicate_booking", err.Error())
	case errors.Is(err, clinic.ErrProviderUnavailable):
		writeError(w, http.StatusConflict, "provider_unavailable", err.Error())
	case errors.Is(err, clinic.ErrSlotOccupied):
		writeError(w, http.StatusConflict, "already_booked_at_new_slot", err.Error())
	case errors.Is(err, clinic.ErrNoTechnician):
		writeError(w, http.StatusConflict, "no_technician_available", err.Error())
	case errors.Is(err, clinic.ErrNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, clinic.ErrInvalidProvider):
		writeError(w, http.StatusNotFound, "provider_not_found", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, ErrorResponse{Error: code, Details: details})
}
