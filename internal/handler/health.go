package handler

import (
	"net/http"
)

type healthResponse struct {
	Status   string `json:"status"`
	SMTP     string `json:"smtp"`
	Database string `json:"database"`
}

// Health handles GET /api/health. SMTP verification is informational; only
// a configured but unreachable database makes the service unhealthy.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", SMTP: "unknown", Database: "disabled"}
	if h.smtp != nil {
		resp.SMTP = h.smtp.State()
	}

	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			resp.Status = "unhealthy"
			resp.Database = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp.Database = "ok"
	}

	writeJSON(w, http.StatusOK, resp)
}
