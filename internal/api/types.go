package api

import "github.com/google/uuid"

// Dates and dates of birth cross the wire as M/D/YYYY strings, the format
// the clinic's roster files use.

type PatientRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
}

type BookDoctorRequest struct {
	Date    string         `json:"date"`
	Slot    string         `json:"slot"`
	Patient PatientRequest `json:"patient"`
	NPI     string         `json:"npi"`
}

type BookImagingRequest struct {
	Date    string         `json:"date"`
	Slot    string         `json:"slot"`
	Patient PatientRequest `json:"patient"`
	Room    string         `json:"room"`
}

type CancelRequest struct {
	Date    string         `json:"date"`
	Slot    string         `json:"slot"`
	Patient PatientRequest `json:"patient"`
}

type RescheduleRequest struct {
	Date    string         `json:"date"`
	OldSlot string         `json:"old_slot"`
	NewSlot string         `json:"new_slot"`
	Patient PatientRequest `json:"patient"`
}

type VisitResponse struct {
	ID       uuid.UUID `json:"id"`
	Date     string    `json:"date"`
	Slot     string    `json:"slot"`
	Patient  string    `json:"patient"`
	Provider string    `json:"provider"`
	Room     string    `json:"room,omitempty"`
}

type ProviderResponse struct {
	Type      string `json:"type"` // "doctor" or "technician"
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	DOB       string `json:"dob"`
	Location  string `json:"location"`
	Specialty string `json:"specialty,omitempty"`
	NPI       string `json:"npi,omitempty"`
	Rate      int    `json:"rate,omitempty"`
}

type ProviderListResponse struct {
	Providers []ProviderResponse `json:"providers"`
	Rotation  string             `json:"rotation"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
