package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePatchRequest(t *testing.T) {
	t.Run("toggle", func(t *testing.T) {
		req, err := DecodePatchRequest([]byte(`{"action":"toggle-checkin"}`))
		require.NoError(t, err)
		assert.Equal(t, ToggleCheckinAction{}, req)
	})

	t.Run("set with timestamp", func(t *testing.T) {
		req, err := DecodePatchRequest([]byte(`{"action":"set-checkin","isCheckedIn":true,"checkedInAt":"2026-08-24T07:30:00Z"}`))
		require.NoError(t, err)
		set, ok := req.(SetCheckinAction)
		require.True(t, ok)
		assert.True(t, set.IsCheckedIn)
		require.NotNil(t, set.CheckedInAt)
		assert.True(t, time.Date(2026, 8, 24, 7, 30, 0, 0, time.UTC).Equal(*set.CheckedInAt))
	})

	t.Run("set without value", func(t *testing.T) {
		_, err := DecodePatchRequest([]byte(`{"action":"set-checkin"}`))
		assert.Error(t, err)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := DecodePatchRequest([]byte(`{"action":"explode"}`))
		assert.Error(t, err)
	})

	t.Run("partial update keeps absent fields nil", func(t *testing.T) {
		req, err := DecodePatchRequest([]byte(`{"name":"An","phone":""}`))
		require.NoError(t, err)
		upd, ok := req.(PartialUpdateAction)
		require.True(t, ok)
		require.NotNil(t, upd.Fields.Name)
		assert.Equal(t, "An", *upd.Fields.Name)
		require.NotNil(t, upd.Fields.Phone)
		assert.Empty(t, *upd.Fields.Phone)
		assert.Nil(t, upd.Fields.Email)
		assert.Nil(t, upd.Fields.Source)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := DecodePatchRequest([]byte(`{"action":`))
		assert.ErrorIs(t, err, errMalformedBody)
	})
}
