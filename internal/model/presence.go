package model

// PresenceStatus is the Discord online state of the tracked identity.
type PresenceStatus string

const (
	StatusOnline  PresenceStatus = "online"
	StatusIdle    PresenceStatus = "idle"
	StatusDND     PresenceStatus = "dnd"
	StatusOffline PresenceStatus = "offline"
)

// ParsePresenceStatus maps a raw status string to a PresenceStatus.
// Anything unknown is treated as offline.
func ParsePresenceStatus(s string) PresenceStatus {
	switch PresenceStatus(s) {
	case StatusOnline, StatusIdle, StatusDND:
		return PresenceStatus(s)
	default:
		return StatusOffline
	}
}

// Activity is one entry of the identity's current activity list.
type Activity struct {
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
	State   string `json:"state,omitempty"`
	Type    int    `json:"type"`
}

// PresenceSnapshot is the complete, atomically replaced view of the tracked
// identity. The avatar URL is derived from UserID and AvatarHash on read.
type PresenceSnapshot struct {
	UserID     string         `json:"user_id"`
	Username   string         `json:"username"`
	Status     PresenceStatus `json:"status"`
	Activities []Activity     `json:"activities"`
	AvatarHash string         `json:"avatar_hash,omitempty"`
}
