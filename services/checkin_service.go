package services

import (
	"context"
	"log"
	"time"

	"guest-checkin/metrics"
	"guest-checkin/models"
	"guest-checkin/repositories"
)

// CheckinService flips guests between checked in and not checked in.
//
// Toggle and SetCheckedIn stamp checkedInAt differently: Toggle stamps every
// check-in, SetCheckedIn keeps the first one. Both are relied on by callers.
// Neither clears checkedInAt on check-out.
type CheckinService struct {
	repo     repositories.GuestRepository
	resolver *GuestResolver
	now      func() time.Time
}

func NewCheckinService(repo repositories.GuestRepository, resolver *GuestResolver) *CheckinService {
	return &CheckinService{repo: repo, resolver: resolver, now: time.Now}
}

// Toggle flips isCheckedIn on the guest named by token.
func (s *CheckinService) Toggle(ctx context.Context, token string) (*models.Guest, error) {
	guest, filter, err := s.resolver.ResolveByID(ctx, token)
	if err != nil {
		return nil, err
	}

	now := s.now()
	checkingIn := !guest.IsCheckedIn
	patch := repositories.GuestPatch{
		IsCheckedIn: &checkingIn,
		UpdatedAt:   now,
	}
	if checkingIn {
		patch.CheckedInAt = &now
	}

	log.Printf("➡️ CheckinService.Toggle guest=%s checkingIn=%v", guest.CustomID, checkingIn)
	updated, err := s.apply(ctx, filter, patch)
	if err == nil {
		metrics.CheckinTransitions.WithLabelValues("toggle", metrics.State(checkingIn)).Inc()
	}
	return updated, err
}

// SetCheckedIn sets isCheckedIn to value. When checking in a guest that has
// never been checked in, checkedInAt becomes at (or now when at is nil); an
// existing checkedInAt is kept.
func (s *CheckinService) SetCheckedIn(ctx context.Context, token string, value bool, at *time.Time) (*models.Guest, error) {
	guest, filter, err := s.resolver.ResolveByID(ctx, token)
	if err != nil {
		return nil, err
	}
	updated, err := s.apply(ctx, filter, s.setCheckedInPatch(guest, value, at))
	if err == nil && guest.IsCheckedIn != value {
		metrics.CheckinTransitions.WithLabelValues("set", metrics.State(value)).Inc()
	}
	return updated, err
}

func (s *CheckinService) setCheckedInPatch(guest *models.Guest, value bool, at *time.Time) repositories.GuestPatch {
	now := s.now()
	patch := repositories.GuestPatch{
		IsCheckedIn: &value,
		UpdatedAt:   now,
	}
	if value && guest.CheckedInAt == nil {
		stamp := now
		if at != nil && !at.IsZero() {
			stamp = *at
		}
		patch.CheckedInAt = &stamp
	}
	return patch
}

// CheckInByInfo checks in the guest found by contact info. A guest who is
// already checked in is returned untouched with alreadyCheckedIn set.
func (s *CheckinService) CheckInByInfo(ctx context.Context, info ContactInfo) (guest *models.Guest, alreadyCheckedIn bool, err error) {
	found, err := s.resolver.ResolveByContactInfo(ctx, info)
	if err != nil {
		return nil, false, err
	}
	if found.IsCheckedIn {
		log.Printf("⬅️ CheckinService.CheckInByInfo guest=%s already checked in", found.CustomID)
		return found, true, nil
	}

	filter := repositories.GuestFilter{InternalID: found.ID}
	updated, err := s.apply(ctx, filter, s.setCheckedInPatch(found, true, nil))
	if err != nil {
		return nil, false, err
	}
	metrics.CheckinTransitions.WithLabelValues("info", metrics.State(true)).Inc()
	return updated, false, nil
}

func (s *CheckinService) apply(ctx context.Context, filter repositories.GuestFilter, patch repositories.GuestPatch) (*models.Guest, error) {
	matched, err := s.repo.UpdateOne(ctx, filter, patch)
	if err != nil {
		return nil, storeError(err)
	}
	if matched == 0 {
		return nil, notFound(MsgGuestNotFound)
	}

	updated, err := s.repo.FindOne(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}
	if updated == nil {
		return nil, notFound(MsgGuestNotFound)
	}
	return updated, nil
}
