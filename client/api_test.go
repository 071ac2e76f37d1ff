package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient(t *testing.T) {
	var patchBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": "Unauthorized", "message": "Phiên đăng nhập không hợp lệ"})
			return
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/guests":
			_, _ = io.WriteString(w, `{"success":true,"count":1,"data":[{"_id":7,"id":"abc","name":"An","isCheckedIn":false}]}`)
		case r.Method == http.MethodPatch && r.URL.Path == "/api/guests/abc":
			b, _ := io.ReadAll(r.Body)
			patchBody = string(b)
			_, _ = io.WriteString(w, `{"success":true,"data":{"_id":7,"id":"abc","name":"An","isCheckedIn":true,"checkedInAt":"2026-08-24T09:00:00Z"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"error":"NotFound","message":"Không tìm thấy khách"}`)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	c := NewHTTPClient(srv.URL+"/api/", "tok")

	guests, err := c.ListGuests(ctx)
	require.NoError(t, err)
	require.Len(t, guests, 1)
	assert.Equal(t, uint(7), guests[0].ID)
	assert.Equal(t, "abc", guests[0].CustomID)

	g, err := c.ToggleCheckIn(ctx, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"action":"toggle-checkin"}`, patchBody)
	assert.True(t, g.IsCheckedIn)
	require.NotNil(t, g.CheckedInAt)

	_, err = c.ToggleCheckIn(ctx, "missing")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "NotFound", apiErr.Kind)
	assert.False(t, retryable(err))

	_, err = NewHTTPClient(srv.URL+"/api", "").ListGuests(ctx)
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&APIError{Status: http.StatusServiceUnavailable}))
	assert.False(t, retryable(&APIError{Status: http.StatusConflict}))
	assert.False(t, retryable(context.Canceled))
	assert.True(t, retryable(io.ErrUnexpectedEOF))
}
