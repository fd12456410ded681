package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestContactCmd_Success(t *testing.T) {
	var got model.ContactSubmission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(model.RelayResult{Success: true, Message: "message sent"})
	}))
	defer srv.Close()

	out, err := execute(t, "contact", "--api", srv.URL, "--name", "A", "--email", "a@b.com", "--message", "hi")
	require.NoError(t, err)

	assert.Equal(t, model.ContactSubmission{Name: "A", Email: "a@b.com", Message: "hi"}, got)
	assert.Contains(t, out, "[success]")
}

func TestContactCmd_RelayRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(model.RelayResult{Message: "all fields required"})
	}))
	defer srv.Close()

	out, err := execute(t, "contact", "--api", srv.URL, "--name", "A")
	require.ErrorIs(t, err, errSubmitFailed)
	assert.Contains(t, out, "all fields required")
}

func TestPresenceCmd_FallbackOn404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out, err := execute(t, "presence", "--api-url", srv.URL, "--user-id", "968070307095150602", "--meta")
	require.NoError(t, err)

	var body struct {
		Status    string `json:"status"`
		AvatarURL string `json:"avatar_url"`
		Meta      struct {
			Suppressed bool `json:"suppressed"`
			Failure    struct {
				Kind string `json:"kind"`
			} `json:"failure"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "offline", body.Status)
	assert.Equal(t, "https://cdn.discordapp.com/embed/avatars/0.png", body.AvatarURL)
	assert.True(t, body.Meta.Suppressed)
	assert.Equal(t, "http_status", body.Meta.Failure.Kind)
}
