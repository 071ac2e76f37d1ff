// Package client talks to the check-in API and keeps a local guest list that
// reception screens read from.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"guest-checkin/models"
)

// GuestAPI is the part of the server the cache depends on.
type GuestAPI interface {
	ListGuests(ctx context.Context) ([]models.Guest, error)
	ToggleCheckIn(ctx context.Context, guestID string) (models.Guest, error)
}

// APIError is a non-2xx response. Message is the server's localized text.
type APIError struct {
	Status  int
	Kind    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d %s: %s", e.Status, e.Kind, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type HTTPClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewHTTPClient targets baseURL, e.g. "http://localhost:8080/api".
func NewHTTPClient(baseURL, sessionToken string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   sessionToken,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) ListGuests(ctx context.Context) ([]models.Guest, error) {
	var guests []models.Guest
	if err := c.do(ctx, http.MethodGet, "/guests", nil, &guests); err != nil {
		return nil, err
	}
	return guests, nil
}

func (c *HTTPClient) ToggleCheckIn(ctx context.Context, guestID string) (models.Guest, error) {
	var guest models.Guest
	body := strings.NewReader(`{"action":"toggle-checkin"}`)
	err := c.do(ctx, http.MethodPatch, "/guests/"+url.PathEscape(guestID), body, &guest)
	return guest, err
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	if resp.StatusCode >= 300 || !env.Success {
		return &APIError{Status: resp.StatusCode, Kind: env.Error, Message: env.Message}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}
