package api

import (
	"net/http"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

type HealthHandler struct {
	roster  *clinic.Roster
	env     string
	version string
}

func NewHealthHandler(roster *clinic.Roster, env, version string) *HealthHandler {
	return &HealthHandler{roster: roster, env: env, version: version}
}

type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Env     string `json:"env,omitempty"`
}

type ReadinessResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version,omitempty"`
	Env         string `json:"env,omitempty"`
	Doctors     int    `json:"doctors"`
	Technicians int    `json:"technicians"`
}

func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	resp := LivenessResponse{
		Status:  "ok",
		Version: h.version,
		Env:     h.env,
	}
	writeJSON(w, http.StatusOK, resp)
}

// Readiness reports whether a roster is loaded. With no providers the
// service is up but cannot book anything.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:      "ok",
		Version:     h.version,
		Env:         h.env,
		Doctors:     len(h.roster.Doctors),
		Technicians: len(h.roster.Technicians),
	}

	httpStatus := http.StatusOK
	if len(h.roster.Providers) == 0 {
		resp.Status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, resp)
}
