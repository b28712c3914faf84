package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

type RouterConfig struct {
	Scheduler *clinic.Scheduler
	Roster    *clinic.Roster
	Env       string
	Version   string
	Logger    zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	g := &scheduler{sched: cfg.Scheduler}

	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.Roster, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Post("/visits/doctor", bookDoctorHandler(g, cfg.Roster))
	r.Post("/visits/imaging", bookImagingHandler(g))
	r.Post("/visits/cancel", cancelHandler(g))
	r.Post("/visits/reschedule", rescheduleHandler(g))

	r.Get("/providers", listProvidersHandler(g, cfg.Roster))
	r.Get("/slots", listSlotsHandler())
	r.Get("/reports/{kind}", reportHandler(g))

	return r
}
