package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// handleReady runs every registered check and reports the aggregated
// verdict: 200 when healthy, 503 otherwise. The per-check detail rides
// along so operators see which target failed and why.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	report := s.Registry.RunAll(r.Context())

	if !report.Healthy() {
		s.Logger.Warn("readiness_failed",
			zap.String("status", report.Status),
			zap.Error(report.Err),
		)
	}
	if s.Notifier != nil {
		text := "all checks passing"
		if report.Err != nil {
			text = report.Err.Error()
		}
		if err := s.Notifier.Report(r.Context(), report.Healthy(), text); err != nil {
			s.Logger.Warn("notify_error", zap.Error(err))
		}
	}

	code := http.StatusOK
	if !report.Healthy() {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, report)
}

func (s *Server) handleListChecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Registry.Checks())
}

// handleRunCheck runs one named check on demand, regardless of the
// others. Useful for poking a single dependency after a deploy.
func (s *Server) handleRunCheck(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	res, err := s.Registry.Run(r.Context(), name)
	if err != nil {
		http.Error(w, "unknown check", http.StatusNotFound)
		return
	}

	code := http.StatusOK
	if !res.Verdict.Healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, res)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
