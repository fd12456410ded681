package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/config"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/contactform"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/model"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/internal/presence"
	"github.com/bagassdwipermanaa/portofolio-bagas-dwi-permana-sub000/pkg/lanyard"
	"github.com/spf13/cobra"
)

var errSubmitFailed = errors.New("contact submission failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Client for the portfolio contact relay",
		SilenceUsage: true,
	}
	root.AddCommand(newContactCmd(), newPresenceCmd())
	return root
}

func newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message through the contact relay",
		Long: `Posts name, email and message to the relay's /api/contact endpoint,
exactly as the website's contact form does.`,
		Args: cobra.NoArgs,
		RunE: runContact,
	}
	cmd.Flags().String("api", envOr("PORTFOLIO_API", "http://localhost:5000"), "relay base URL")
	cmd.Flags().String("name", "", "your name")
	cmd.Flags().String("email", "", "your email address")
	cmd.Flags().String("message", "", "message text")
	cmd.Flags().Duration("timeout", contactform.DefaultTimeout, "request timeout")
	return cmd
}

func runContact(cmd *cobra.Command, args []string) error {
	api, _ := cmd.Flags().GetString("api")
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	message, _ := cmd.Flags().GetString("message")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	ctl := contactform.New(api, contactform.WithHTTPClient(newHTTPClient(timeout)))
	notice, err := ctl.Submit(cmd.Context(), model.ContactSubmission{
		Name:    name,
		Email:   email,
		Message: message,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), notice.String())
	if notice.State != contactform.StateSuccess {
		return errSubmitFailed
	}
	return nil
}

func newPresenceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presence",
		Short: "Fetch the tracked Discord presence once",
		Args:  cobra.NoArgs,
		RunE:  runPresence,
	}
	cmd.Flags().String("user-id", envOr("PRESENCE_USER_ID", config.DefaultPresenceUserID), "Discord user id")
	cmd.Flags().String("api-url", envOr("PRESENCE_API_URL", lanyard.DefaultBaseURL), "Lanyard API base URL")
	cmd.Flags().Duration("timeout", presence.DefaultTimeout, "fetch timeout")
	cmd.Flags().Bool("meta", false, "include fetch metadata")
	return cmd
}

type presenceOutput struct {
	model.PresenceSnapshot
	AvatarURL string         `json:"avatar_url"`
	Meta      *presence.Meta `json:"meta,omitempty"`
}

func runPresence(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user-id")
	apiURL, _ := cmd.Flags().GetString("api-url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	withMeta, _ := cmd.Flags().GetBool("meta")

	tr := presence.NewTracker(userID, lanyard.NewClient(apiURL),
		presence.WithTimeout(timeout),
		presence.WithFallbackUsername(envOr("PRESENCE_USERNAME", config.DefaultPresenceUsername)),
	)
	tr.Refresh(cmd.Context())
	snap, meta := tr.Current()

	out := presenceOutput{PresenceSnapshot: snap, AvatarURL: presence.AvatarURL(snap)}
	if withMeta {
		out.Meta = &meta
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
