package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"guest-checkin/models"
	"guest-checkin/repositories"

	"github.com/go-playground/validator/v10"
)

// GuestInput is a complete guest profile, used by create and import.
type GuestInput struct {
	Name   string
	Email  string
	Phone  string
	Gender string
	Age    string
	Source string
}

func (in GuestInput) normalized() GuestInput {
	return GuestInput{
		Name:   strings.TrimSpace(in.Name),
		Email:  NormalizeEmail(in.Email),
		Phone:  NormalizePhone(in.Phone),
		Gender: strings.TrimSpace(in.Gender),
		Age:    strings.TrimSpace(in.Age),
		Source: strings.TrimSpace(in.Source),
	}
}

// GuestFieldsPatch only touches the fields that are non-nil.
type GuestFieldsPatch struct {
	Name   *string
	Email  *string
	Phone  *string
	Gender *string
	Age    *string
	Source *string
}

type GuestService struct {
	repo     repositories.GuestRepository
	resolver *GuestResolver
	checkin  *CheckinService
	validate *validator.Validate
	now      func() time.Time
}

func NewGuestService(repo repositories.GuestRepository, resolver *GuestResolver, checkin *CheckinService, v *validator.Validate) *GuestService {
	return &GuestService{
		repo:     repo,
		resolver: resolver,
		checkin:  checkin,
		validate: v,
		now:      time.Now,
	}
}

func (s *GuestService) List(ctx context.Context) ([]models.Guest, error) {
	guests, err := s.repo.FindAll(ctx)
	if err != nil {
		log.Printf("⬅️ GuestService.List error: %v", err)
		return nil, storeError(err)
	}
	if guests == nil {
		guests = []models.Guest{}
	}
	return guests, nil
}

// Get resolves token through the full lookup cascade.
func (s *GuestService) Get(ctx context.Context, token string) (*models.Guest, error) {
	return s.resolver.ResolveByToken(ctx, token)
}

func (s *GuestService) checkFormat(email, phone string) error {
	if problems := formatProblems(s.validate, email, phone); len(problems) > 0 {
		return invalidArgument(strings.Join(problems, ", "))
	}
	return nil
}

// Create registers a guest. A non-empty email must not already be taken.
func (s *GuestService) Create(ctx context.Context, in GuestInput) (*models.Guest, error) {
	in = in.normalized()
	log.Printf("➡️ GuestService.Create email=%q", in.Email)

	if err := s.checkFormat(in.Email, in.Phone); err != nil {
		return nil, err
	}

	if in.Email != "" {
		existing, err := s.repo.FindOne(ctx, repositories.GuestFilter{EmailEquals: in.Email})
		if err != nil {
			return nil, storeError(err)
		}
		if existing != nil {
			return nil, &Error{Kind: KindConflict, Message: MsgEmailExists}
		}
	}

	now := s.now()
	guest := &models.Guest{
		CustomID:  NewCustomID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Gender:    in.Gender,
		Age:       in.Age,
		Source:    in.Source,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.repo.InsertOne(ctx, guest); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, &Error{Kind: KindConflict, Message: MsgEmailExists, Err: err}
		}
		return nil, storeError(err)
	}

	log.Printf("⬅️ GuestService.Create ok id=%d customId=%s", guest.ID, guest.CustomID)
	return guest, nil
}

// Update writes the profile fields present in fields. A non-nil checkedIn
// goes through the first-check-in-wins policy of CheckinService.SetCheckedIn,
// so a PUT carrying only isCheckedIn leaves the profile untouched.
func (s *GuestService) Update(ctx context.Context, token string, fields GuestFieldsPatch, checkedIn *bool, checkedInAt *time.Time) (*models.Guest, error) {
	guest, filter, err := s.resolver.ResolveByID(ctx, token)
	if err != nil {
		return nil, err
	}

	patch, err := s.profilePatch(fields)
	if err != nil {
		return nil, err
	}
	if checkedIn != nil {
		cp := s.checkin.setCheckedInPatch(guest, *checkedIn, checkedInAt)
		patch.IsCheckedIn = cp.IsCheckedIn
		patch.CheckedInAt = cp.CheckedInAt
	}

	log.Printf("➡️ GuestService.Update guest=%s", guest.CustomID)
	return s.checkin.apply(ctx, filter, patch)
}

// PartialUpdate writes only the provided fields.
func (s *GuestService) PartialUpdate(ctx context.Context, token string, fields GuestFieldsPatch) (*models.Guest, error) {
	guest, filter, err := s.resolver.ResolveByID(ctx, token)
	if err != nil {
		return nil, err
	}

	patch, err := s.profilePatch(fields)
	if err != nil {
		return nil, err
	}

	log.Printf("➡️ GuestService.PartialUpdate guest=%s", guest.CustomID)
	return s.checkin.apply(ctx, filter, patch)
}

// profilePatch normalizes the non-nil fields and checks email and phone format.
func (s *GuestService) profilePatch(fields GuestFieldsPatch) (repositories.GuestPatch, error) {
	patch := repositories.GuestPatch{UpdatedAt: s.now()}
	trim := func(v *string, norm func(string) string) *string {
		if v == nil {
			return nil
		}
		out := norm(*v)
		return &out
	}
	patch.Name = trim(fields.Name, strings.TrimSpace)
	patch.Email = trim(fields.Email, NormalizeEmail)
	patch.Phone = trim(fields.Phone, NormalizePhone)
	patch.Gender = trim(fields.Gender, strings.TrimSpace)
	patch.Age = trim(fields.Age, strings.TrimSpace)
	patch.Source = trim(fields.Source, strings.TrimSpace)

	var email, phone string
	if patch.Email != nil {
		email = *patch.Email
	}
	if patch.Phone != nil {
		phone = *patch.Phone
	}
	if err := s.checkFormat(email, phone); err != nil {
		return repositories.GuestPatch{}, err
	}
	return patch, nil
}

// Delete removes the guest and returns the record as it was.
func (s *GuestService) Delete(ctx context.Context, token string) (*models.Guest, error) {
	guest, filter, err := s.resolver.ResolveByID(ctx, token)
	if err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteOne(ctx, filter)
	if err != nil {
		return nil, storeError(err)
	}
	if deleted == 0 {
		return nil, notFound(MsgGuestNotFound)
	}

	log.Printf("⬅️ GuestService.Delete ok guest=%s", guest.CustomID)
	return guest, nil
}
