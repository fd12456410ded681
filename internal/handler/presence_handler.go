package handler

import (
	"net/http"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/presence"
)

// SnapshotSource provides the latest presence snapshot.
type SnapshotSource interface {
	Current() (model.PresenceSnapshot, presence.Meta)
}

// PresenceHandler serves the tracked identity's presence.
type PresenceHandler struct {
	source SnapshotSource
}

// NewPresenceHandler creates a PresenceHandler reading from source.
func NewPresenceHandler(source SnapshotSource) *PresenceHandler {
	return &PresenceHandler{source: source}
}

type presenceResponse struct {
	model.PresenceSnapshot
	AvatarURL        string `json:"avatar_url"`
	DefaultAvatarURL string `json:"default_avatar_url"`
}

// Get handles GET /api/presence. Fetch failures are never reported here;
// callers just see the offline fallback. default_avatar_url is what a
// browser should show if avatar_url fails to load.
func (h *PresenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, _ := h.source.Current()
	writeJSON(w, http.StatusOK, presenceResponse{
		PresenceSnapshot: snap,
		AvatarURL:        presence.AvatarURL(snap),
		DefaultAvatarURL: presence.DefaultAvatarURL(snap.UserID),
	})
}
