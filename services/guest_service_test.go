package services

import (
	"context"
	"testing"

	"guest-checkin/models"
	"guest-checkin/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "'+84901234567", want: "0901234567"},
		{in: "0901234567", want: "0901234567"},
		{in: "+84 90 123 4567", want: "0901234567"},
		{in: " 090\t1234567 ", want: "0901234567"},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := NormalizePhone(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizePhone(got), "normalizing twice changes nothing")
		})
	}
}

func TestNewCustomID(t *testing.T) {
	a, b := NewCustomID(), NewCustomID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^[0-9a-f]{32}$`, a)
}

func TestGuestService_Create(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.guests.Create(ctx, GuestInput{Name: "  An Le ", Email: " An@X.com ", Phone: "'+84901234567"})
	require.NoError(t, err)
	assert.NotZero(t, got.ID)
	assert.NotEmpty(t, got.CustomID)
	assert.Equal(t, "An Le", got.Name)
	assert.Equal(t, "an@x.com", got.Email)
	assert.Equal(t, "0901234567", got.Phone)
	assert.False(t, got.IsCheckedIn)
	assert.Nil(t, got.CheckedInAt)
	assert.True(t, f.clock.Now().Equal(got.CreatedAt))
}

func TestGuestService_CreateDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{Email: "an@x.com"})

	_, err := f.guests.Create(context.Background(), GuestInput{Email: "AN@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, MsgEmailExists, MessageOf(err))
}

func TestGuestService_CreateWithoutEmailNeverConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.guests.Create(ctx, GuestInput{Name: "One"})
	require.NoError(t, err)
	_, err = f.guests.Create(ctx, GuestInput{Name: "Two"})
	require.NoError(t, err)
}

func TestGuestService_CreateRejectsBadFormat(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.guests.Create(ctx, GuestInput{Email: "not-an-email"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, MsgInvalidEmail, MessageOf(err))

	_, err = f.guests.Create(ctx, GuestInput{Phone: "12345"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, MsgInvalidPhone, MessageOf(err))
}

func TestGuestService_UpdateWritesPresentFields(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{CustomID: "g1", Name: "Old", Gender: "Nữ", Source: "Facebook"})

	name, email := "New", "New@X.com"
	checked := true
	got, err := f.guests.Update(context.Background(), "g1", GuestFieldsPatch{Name: &name, Email: &email}, &checked, nil)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
	assert.Equal(t, "new@x.com", got.Email)
	assert.Equal(t, "Nữ", got.Gender)
	assert.Equal(t, "Facebook", got.Source)
	assert.True(t, got.IsCheckedIn)
	require.NotNil(t, got.CheckedInAt)
}

func TestGuestService_UpdateCheckinOnlyKeepsProfile(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{CustomID: "g1", Name: "An", Email: "an@x.com", Phone: "0901234567"})

	checked := true
	got, err := f.guests.Update(context.Background(), "g1", GuestFieldsPatch{}, &checked, nil)
	require.NoError(t, err)
	assert.True(t, got.IsCheckedIn)

	stored, err := f.repo.FindOne(context.Background(), repositories.GuestFilter{CustomID: "g1"})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "An", stored.Name)
	assert.Equal(t, "an@x.com", stored.Email)
	assert.Equal(t, "0901234567", stored.Phone)
	assert.True(t, stored.IsCheckedIn)
}

func TestGuestService_UpdateRejectsBadFormat(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{CustomID: "g1", Name: "An", Email: "an@x.com"})

	email := "broken"
	_, err := f.guests.Update(context.Background(), "g1", GuestFieldsPatch{Email: &email}, nil, nil)
	assert.Equal(t, KindInvalidArgument, KindOf(err))

	stored, err := f.repo.FindOne(context.Background(), repositories.GuestFilter{CustomID: "g1"})
	require.NoError(t, err)
	assert.Equal(t, "an@x.com", stored.Email)
}

func TestGuestService_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{CustomID: "g1", Name: "Old", Gender: "Nam"})

	phone := "+84 912 345 678"
	got, err := f.guests.PartialUpdate(context.Background(), "g1", GuestFieldsPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Old", got.Name)
	assert.Equal(t, "Nam", got.Gender)
	assert.Equal(t, "0912345678", got.Phone)
}

func TestGuestService_Delete(t *testing.T) {
	f := newFixture(t)
	f.seed(t, models.Guest{CustomID: "g1", Name: "Gone"})
	ctx := context.Background()

	got, err := f.guests.Delete(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, "Gone", got.Name)

	_, err = f.guests.Delete(ctx, "g1")
	assert.ErrorIs(t, err, ErrNotFound)
}
