package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"education-backend-go/internal/services"
)

type MetricsHistoryResponse struct {
	Items []services.MetricSample `json:"items"`
}

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestMetrics(s.DB, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	WriteJSON(w, http.StatusOK, MetricsHistoryResponse{Items: items})
}

// MetricsSocket upgrades an admin connection and keeps it subscribed to
// live samples. The token travels as a query parameter since websocket
// clients cannot set headers.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	registry := s.registry()
	user, err := registry.Auth.CurrentUser(r.Context(), token)
	if err != nil {
		WriteDomainError(w, err)
		return
	}
	if _, err := registry.Permissions.CheckPermission(r.Context(), "ws_metrics", &user, true); err != nil {
		WriteDomainError(w, err)
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
