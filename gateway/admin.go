package gateway

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// Operator endpoints. They live next to the game socket on the same
// listener: the gateway is expected to be fronted by infrastructure
// which keeps /admin/ away from players.

type adminBanRequest struct {
	PlayerID string `json:"playerId"`
	Reason   string `json:"reason"`
}

func registerAdmin(mux *http.ServeMux, srv *Server) {
	mux.HandleFunc("GET /admin/players/{playerID}", srv.handleAdminPlayerStatus)
	mux.HandleFunc("GET /admin/logs", srv.handleAdminLogs)
	mux.HandleFunc("POST /admin/ban", srv.handleAdminBan)
}

func (s *Server) handleAdminPlayerStatus(w http.ResponseWriter, r *http.Request) {
	status := s.guard.PlayerStatus(r.PathValue("playerID"))
	if status == nil {
		http.Error(w, "player is not tracked", http.StatusNotFound)

		return
	}

	writeAdminJSON(w, status)
}

func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	limit := defaultAdminLogsLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, "limit must be an integer", http.StatusBadRequest)

			return
		}

		limit = parsed
	}

	writeAdminJSON(w, s.guard.SuspiciousLogs(limit))
}

func (s *Server) handleAdminBan(w http.ResponseWriter, r *http.Request) {
	req := adminBanRequest{}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "cannot parse request body", http.StatusBadRequest)

		return
	}

	if req.PlayerID == "" {
		http.Error(w, "playerId is required", http.StatusBadRequest)

		return
	}

	s.guard.BanPlayer(req.PlayerID, req.Reason)
	w.WriteHeader(http.StatusNoContent)
}

func writeAdminJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	json.NewEncoder(w).Encode(v) //nolint: errcheck
}
