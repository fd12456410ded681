package presence

import (
	"testing"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestDefaultAvatarIndex_Deterministic(t *testing.T) {
	const id uint64 = 968070307095150602
	want := int((id >> 22) % 6)

	assert.Equal(t, want, DefaultAvatarIndex("968070307095150602"))
	assert.Equal(t, 0, DefaultAvatarIndex("968070307095150602"))
	for i := 0; i < 3; i++ {
		assert.Equal(t, want, DefaultAvatarIndex("968070307095150602"), "call %d", i)
	}
}

func TestDefaultAvatarIndex_Unparsable(t *testing.T) {
	assert.Equal(t, 0, DefaultAvatarIndex("not-a-snowflake"))
	assert.Equal(t, 0, DefaultAvatarIndex(""))
}

func TestDefaultAvatarURL(t *testing.T) {
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png", DefaultAvatarURL("968070307095150602"))
	// (80084912373252096 >> 22) % 6 == 3
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/3.png", DefaultAvatarURL("80084912373252096"))
}

func TestAvatarURL(t *testing.T) {
	cases := []struct {
		name string
		hash string
		want string
	}{
		{"static", "abc123", "https://cdn.discordapp.com/avatars/968070307095150602/abc123.png"},
		{"animated", "a_abc123", "https://cdn.discordapp.com/avatars/968070307095150602/a_abc123.gif"},
		{"missing", "", "https://cdn.discordapp.com/embed/avatars/0.png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := model.PresenceSnapshot{UserID: "968070307095150602", AvatarHash: tc.hash}
			assert.Equal(t, tc.want, AvatarURL(s))
		})
	}
}
