package services

import (
	"context"
	"log"
	"strconv"
	"strings"

	"guest-checkin/metrics"
	"guest-checkin/models"
	"guest-checkin/repositories"
	"guest-checkin/utils"
)

// GuestResolver finds a single guest from loosely specified input.
type GuestResolver struct {
	repo repositories.GuestRepository
}

func NewGuestResolver(repo repositories.GuestRepository) *GuestResolver {
	return &GuestResolver{repo: repo}
}

// ContactInfo is the lookup input of the QR/manual check-in flow.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// parseInternalID accepts the store's key format: a positive base-10 integer.
func parseInternalID(token string) (uint, bool) {
	n, err := strconv.ParseUint(token, 10, 64)
	if err != nil || n == 0 || uint64(uint(n)) != n {
		return 0, false
	}
	return uint(n), true
}

// ResolveByID tries the custom id, then the internal id. It never falls back
// to email, so it is the lookup used before mutating a record. The returned
// filter addresses the found record.
func (r *GuestResolver) ResolveByID(ctx context.Context, token string) (*models.Guest, repositories.GuestFilter, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, repositories.GuestFilter{}, invalidArgument(MsgMissingID)
	}

	filter := repositories.GuestFilter{CustomID: token}
	guest, err := r.repo.FindOne(ctx, filter)
	if err != nil {
		return nil, filter, storeError(err)
	}
	if guest != nil {
		return guest, filter, nil
	}

	if id, ok := parseInternalID(token); ok {
		filter = repositories.GuestFilter{InternalID: id}
		guest, err = r.repo.FindOne(ctx, filter)
		if err != nil {
			return nil, filter, storeError(err)
		}
		if guest != nil {
			return guest, filter, nil
		}
	}

	return nil, repositories.GuestFilter{}, notFound(MsgGuestNotFound)
}

// ResolveByToken runs the full cascade: custom id, internal id, then a
// case-insensitive substring of the email. The last step can return the
// wrong guest when the token is short ("jo" matches every john@ and joe@).
func (r *GuestResolver) ResolveByToken(ctx context.Context, token string) (*models.Guest, error) {
	guest, _, err := r.ResolveByID(ctx, token)
	if err == nil {
		return guest, nil
	}
	if KindOf(err) != KindNotFound {
		return nil, err
	}

	token = strings.TrimSpace(token)
	guest, err = r.repo.FindOne(ctx, repositories.GuestFilter{EmailContains: token})
	if err != nil {
		return nil, storeError(err)
	}
	if guest == nil {
		return nil, notFound(MsgGuestNotFoundLoose)
	}

	metrics.LooseEmailMatches.Inc()
	log.Printf("⚠️ guest %s resolved by partial email match on %q (%s); may be a false positive",
		guest.CustomID, token, utils.MaskEmail(guest.Email))
	return guest, nil
}

// ResolveByContactInfo tries email, then phone, then name, each as an exact
// match. The order follows how unique each field is expected to be.
func (r *GuestResolver) ResolveByContactInfo(ctx context.Context, info ContactInfo) (*models.Guest, error) {
	email := strings.TrimSpace(info.Email)
	phone := NormalizePhone(info.Phone)
	name := strings.TrimSpace(info.Name)

	if email == "" && phone == "" && name == "" {
		return nil, invalidArgument(MsgMissingContactInfo)
	}

	var filters []repositories.GuestFilter
	if email != "" {
		filters = append(filters, repositories.GuestFilter{EmailEquals: email})
	}
	if phone != "" {
		filters = append(filters, repositories.GuestFilter{Phone: phone})
	}
	if name != "" {
		filters = append(filters, repositories.GuestFilter{NameEquals: name})
	}

	for _, f := range filters {
		guest, err := r.repo.FindOne(ctx, f)
		if err != nil {
			return nil, storeError(err)
		}
		if guest != nil {
			return guest, nil
		}
	}
	return nil, notFound(MsgContactNotFound)
}
