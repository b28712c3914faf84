package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinicdesk/clinic-scheduling/internal/clinic"
)

// reportHandler renders one plain-text report block. Kinds map onto the
// clinic's report set; an unknown kind is a 404.
func reportHandler(g *scheduler) http.HandlerFunc {
	kinds := map[string]func(*clinic.Scheduler) string{
		"appointment": (*clinic.Scheduler).ReportByAppointment,
		"patient":     (*clinic.Scheduler).ReportByPatient,
		"location":    (*clinic.Scheduler).ReportByLocation,
		"office":      (*clinic.Scheduler).ReportOffice,
		"imaging":     (*clinic.Scheduler).ReportImaging,
		"charges":     (*clinic.Scheduler).ReportCharges,
		"credits":     (*clinic.Scheduler).ReportProviderCredits,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		kind := chi.URLParam(r, "kind")
		render, ok := kinds[kind]
		if !ok {
			writeError(w, http.StatusNotFound, "unknown_report", "no report kind "+kind)
			return
		}

		g.mu.Lock()
		text := render(g.sched)
		g.mu.Unlock()

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(text))
	}
}
