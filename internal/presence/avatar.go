package presence

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
)

const (
	cdnBaseURL         = "https://cdn.discordapp.com"
	defaultAvatarCount = 6
	animatedPrefix     = "a_"
)

// DefaultAvatarIndex selects one of Discord's default avatars from the
// snowflake id: (id >> 22) % 6. Unparsable ids map to 0.
func DefaultAvatarIndex(userID string) int {
	id, err := strconv.ParseUint(userID, 10, 64)
	if err != nil {
		return 0
	}
	return int((id >> 22) % defaultAvatarCount)
}

// DefaultAvatarURL is the deterministic avatar for userID.
func DefaultAvatarURL(userID string) string {
	return fmt.Sprintf("%s/embed/avatars/%d.png", cdnBaseURL, DefaultAvatarIndex(userID))
}

// AvatarURL resolves the avatar of s. Animated hashes get a gif, other
// hashes a png, and a missing hash falls back to DefaultAvatarURL.
func AvatarURL(s model.PresenceSnapshot) string {
	if s.AvatarHash == "" {
		return DefaultAvatarURL(s.UserID)
	}
	ext := "png"
	if strings.HasPrefix(s.AvatarHash, animatedPrefix) {
		ext = "gif"
	}
	return fmt.Sprintf("%s/avatars/%s/%s.%s", cdnBaseURL,
		url.PathEscape(s.UserID), url.PathEscape(s.AvatarHash), ext)
}
