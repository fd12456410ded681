// Package lanyard is a small client for the Lanyard Discord presence API.
// It uses raw HTTP calls; the API has a single read endpoint.
package lanyard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public Lanyard API.
const DefaultBaseURL = "https://api.lanyard.rest"

// DiscordUser is the user object inside a presence payload.
type DiscordUser struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Avatar        string `json:"avatar"`
}

// Activity is one entry of the activities array.
type Activity struct {
	Name    string `json:"name"`
	Type    int    `json:"type"`
	Details string `json:"details"`
	State   string `json:"state"`
}

// Presence is the data object of GET /v1/users/{id}.
type Presence struct {
	DiscordUser   DiscordUser `json:"discord_user"`
	DiscordStatus string      `json:"discord_status"`
	Activities    []Activity  `json:"activities"`
}

var (
	// ErrMalformed is returned when the response body is not the expected shape.
	ErrMalformed = errors.New("lanyard: malformed response")
	// ErrUnsuccessful is returned when the API answers with success=false.
	ErrUnsuccessful = errors.New("lanyard: unsuccessful response")
)

// StatusError is returned for non-2xx responses. A 404 usually means the
// user never joined the Lanyard server.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("lanyard: unexpected status %d", e.Code)
}

// Client fetches presence data.
type Client interface {
	GetUser(ctx context.Context, userID string) (*Presence, error)
}

// RealClient is the HTTP implementation of Client.
type RealClient struct {
	BaseURL    string
	httpClient *http.Client
}

var _ Client = (*RealClient)(nil)

// NewClient creates a RealClient. An empty baseURL selects DefaultBaseURL.
// Callers bound individual requests through ctx.
func NewClient(baseURL string) *RealClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RealClient{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// GetUser calls GET /v1/users/{id}.
func (c *RealClient) GetUser(ctx context.Context, userID string) (*Presence, error) {
	endpoint := c.BaseURL + "/v1/users/" + url.PathEscape(userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var result struct {
		Success bool      `json:"success"`
		Data    *Presence `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if !result.Success {
		return nil, ErrUnsuccessful
	}
	if result.Data == nil {
		return nil, fmt.Errorf("%w: missing data", ErrMalformed)
	}
	return result.Data, nil
}
