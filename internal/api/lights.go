package api

import (
	"net/http"

	"github.com/lumesync/lumesync/internal/hub"
)

// handleLights returns the light listing for one server.
//
// The listing comes straight from the hub's live registry: id is the
// stable hardware identity, info the controller-assigned id, name the
// label. A missing or unknown server parameter is a plain-text 500 for
// compatibility with poll-style consumers that predate the JSON error
// envelope.
func (s *Server) handleLights(w http.ResponseWriter, r *http.Request) {
	serverID := r.URL.Query().Get("server")
	if serverID == "" {
		http.Error(w, "server query parameter is required", http.StatusInternalServerError)
		return
	}

	h, ok := s.manager.Get(serverID)
	if !ok {
		http.Error(w, "unknown server: "+serverID, http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, h.List())
}

// serverInfo is one entry in the servers listing.
type serverInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Devices int    `json:"devices"`
}

// handleServers lists the configured upstream servers and their device counts.
func (s *Server) handleServers(w http.ResponseWriter, _ *http.Request) {
	hubs := s.manager.Hubs()
	out := make([]serverInfo, 0, len(hubs))
	for _, h := range hubs {
		out = append(out, serverInfo{
			ID:      h.ServerID(),
			Name:    h.Name(),
			Devices: h.DeviceCount(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleStoredDevices lists the persisted device snapshots for one server.
func (s *Server) handleStoredDevices(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeNotFound(w, "device store is not enabled")
		return
	}

	serverID := r.URL.Query().Get("server")
	if serverID == "" {
		writeBadRequest(w, "server query parameter is required")
		return
	}

	devices, err := s.store.Devices(r.Context(), serverID)
	if err != nil {
		s.logger.Error("listing stored devices", "server", serverID, "error", err)
		writeInternalError(w, "listing devices failed")
		return
	}
	if devices == nil {
		devices = []hub.StoredDevice{}
	}
	writeJSON(w, http.StatusOK, devices)
}
