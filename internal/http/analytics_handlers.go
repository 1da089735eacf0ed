package httpapi

import "net/http"

func (s *Server) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	report, err := s.Analytics.Analyze(r.Context())
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, report)
}
