package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"guest-checkin/models"

	"golang.org/x/sync/singleflight"
)

const (
	defaultFreshness  = 2 * time.Minute
	defaultRetryDelay = time.Second
)

// GuestCache holds the guest list for a reception screen. Reads are served
// from memory and revalidated in the background once the list is older than
// the freshness window. Check-in toggles are applied locally before the
// server answers and rolled back if it fails.
//
// Two toggles of the same guest in flight at once are not serialized; the
// one that settles last decides the cached state.
type GuestCache struct {
	api        GuestAPI
	now        func() time.Time
	freshness  time.Duration
	retryDelay time.Duration

	mu        sync.Mutex
	guests    []models.Guest
	loaded    bool
	fetchedAt time.Time
	stale     bool

	// bumped by every local mutation so an older fetch cannot overwrite it
	gen uint64

	fetches    singleflight.Group
	background sync.WaitGroup

	// OnRevalidateError receives errors from background refreshes.
	OnRevalidateError func(error)
}

type Option func(*GuestCache)

func WithClock(now func() time.Time) Option {
	return func(c *GuestCache) { c.now = now }
}

func WithFreshness(d time.Duration) Option {
	return func(c *GuestCache) { c.freshness = d }
}

func WithRetryDelay(d time.Duration) Option {
	return func(c *GuestCache) { c.retryDelay = d }
}

func NewGuestCache(api GuestAPI, opts ...Option) *GuestCache {
	c := &GuestCache{
		api:        api,
		now:        time.Now,
		freshness:  defaultFreshness,
		retryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init loads the list once; call it when the screen starts.
func (c *GuestCache) Init(ctx context.Context) error {
	return c.Refetch(ctx)
}

// Refetch loads the list from the server and blocks until it is in place.
// Concurrent calls share one request.
func (c *GuestCache) Refetch(ctx context.Context) error {
	c.mu.Lock()
	startGen := c.gen
	c.mu.Unlock()

	v, err, _ := c.fetches.Do("guests", func() (interface{}, error) {
		return c.api.ListGuests(ctx)
	})
	if err != nil {
		return err
	}
	fresh := v.([]models.Guest)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded && c.gen != startGen {
		// a toggle happened while this fetch was in flight
		c.stale = true
		return nil
	}
	c.guests = cloneGuests(fresh)
	c.loaded = true
	c.fetchedAt = c.now()
	c.stale = false
	return nil
}

// Invalidate marks the list stale; the next read revalidates it.
func (c *GuestCache) Invalidate() {
	c.mu.Lock()
	c.stale = true
	c.mu.Unlock()
}

// Guests returns the cached list. The first call blocks on the initial load;
// later calls never wait and trigger a background refresh when stale.
func (c *GuestCache) Guests(ctx context.Context) ([]models.Guest, error) {
	c.mu.Lock()
	loaded := c.loaded
	needsRefresh := c.stale || c.now().Sub(c.fetchedAt) >= c.freshness
	c.mu.Unlock()

	if !loaded {
		if err := c.Refetch(ctx); err != nil {
			return nil, err
		}
		return c.Snapshot(), nil
	}

	if needsRefresh {
		c.background.Add(1)
		go func() {
			defer c.background.Done()
			if err := c.Refetch(context.WithoutCancel(ctx)); err != nil && c.OnRevalidateError != nil {
				c.OnRevalidateError(err)
			}
		}()
	}
	return c.Snapshot(), nil
}

// Snapshot copies the cached list without touching the network.
func (c *GuestCache) Snapshot() []models.Guest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneGuests(c.guests)
}

// Wait blocks until background refreshes started so far have finished.
func (c *GuestCache) Wait() {
	c.background.Wait()
}

// ToggleCheckIn flips the guest locally, then asks the server. On failure
// the guest's entry is restored to what it was before the toggle; entries of
// other guests are left alone.
func (c *GuestCache) ToggleCheckIn(ctx context.Context, guestID string) (models.Guest, error) {
	c.mu.Lock()
	var before []models.Guest
	now := c.now()
	for i := range c.guests {
		if c.guests[i].MatchesToken(guestID) {
			before = append(before, cloneGuests(c.guests[i:i+1])...)
			applyToggle(&c.guests[i], now)
		}
	}
	c.gen++
	c.mu.Unlock()

	updated, err := c.toggleWithRetry(ctx, guestID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if err != nil {
		for _, prev := range before {
			for i := range c.guests {
				if sameGuest(c.guests[i], prev) {
					c.guests[i] = prev
				}
			}
		}
		return models.Guest{}, err
	}

	for i := range c.guests {
		if sameGuest(c.guests[i], updated) {
			c.guests[i] = updated
		}
	}
	c.stale = true
	return updated, nil
}

func (c *GuestCache) toggleWithRetry(ctx context.Context, guestID string) (models.Guest, error) {
	updated, err := c.api.ToggleCheckIn(ctx, guestID)
	if err == nil || !retryable(err) {
		return updated, err
	}

	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return models.Guest{}, err
	case <-timer.C:
	}
	return c.api.ToggleCheckIn(ctx, guestID)
}

// retryable is false for 4xx answers; repeating them cannot succeed.
func retryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status >= http.StatusInternalServerError
	}
	return !errors.Is(err, context.Canceled)
}

// applyToggle mirrors the server's toggle: checking in stamps checkedInAt,
// checking out leaves it.
func applyToggle(g *models.Guest, now time.Time) {
	g.IsCheckedIn = !g.IsCheckedIn
	if g.IsCheckedIn {
		at := now
		g.CheckedInAt = &at
	}
	g.UpdatedAt = now
}

func sameGuest(a, b models.Guest) bool {
	if a.ID != 0 && b.ID != 0 {
		return a.ID == b.ID
	}
	return a.CustomID != "" && a.CustomID == b.CustomID
}

func cloneGuests(in []models.Guest) []models.Guest {
	if in == nil {
		return nil
	}
	out := make([]models.Guest, len(in))
	copy(out, in)
	for i := range out {
		if out[i].CheckedInAt != nil {
			at := *out[i].CheckedInAt
			out[i].CheckedInAt = &at
		}
	}
	return out
}
