package http

import "net/http"

func (s *Server) incidentReport(w http.ResponseWriter, r *http.Request) {
	counts, err := s.uc.Report.IncidentCounts(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, counts)
}

func (s *Server) timeReport(w http.ResponseWriter, r *http.Request) {
	summary, err := s.uc.Report.TimeSummary(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, summary)
}

func (s *Server) overviewReport(w http.ResponseWriter, r *http.Request) {
	rows, err := s.uc.Report.Overview(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, rows)
}

func (s *Server) briefingReport(w http.ResponseWriter, r *http.Request) {
	entries, err := s.uc.Report.Briefing(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, entries)
}
