package services

import (
	"context"
	"testing"
	"time"

	"guest-checkin/models"
	"guest-checkin/repositories"
	"guest-checkin/testutil"

	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	repo     repositories.GuestRepository
	resolver *GuestResolver
	checkin  *CheckinService
	guests   *GuestService
	importer *ImportService
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	repo := repositories.NewGuestRepository(db)
	v := NewValidator()
	clock := &fakeClock{t: time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)}

	resolver := NewGuestResolver(repo)
	checkin := NewCheckinService(repo, resolver)
	checkin.now = clock.Now
	guests := NewGuestService(repo, resolver, checkin, v)
	guests.now = clock.Now
	importer := NewImportService(repo, repositories.NewImportLogRepository(db), v)
	importer.now = clock.Now

	return &fixture{
		repo:     repo,
		resolver: resolver,
		checkin:  checkin,
		guests:   guests,
		importer: importer,
		clock:    clock,
	}
}

func (f *fixture) seed(t *testing.T, guests ...models.Guest) []models.Guest {
	t.Helper()
	out := make([]models.Guest, 0, len(guests))
	for i := range guests {
		g := guests[i]
		if g.CustomID == "" {
			g.CustomID = NewCustomID()
		}
		_, err := f.repo.InsertOne(context.Background(), &g)
		require.NoError(t, err)
		out = append(out, g)
	}
	return out
}
