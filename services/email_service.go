package services

import (
	"context"
	"log"
	"strings"

	"guest-checkin/utils"
)

// InvitationService mails a guest their check-in link.
type InvitationService struct {
	resolver  *GuestResolver
	mailer    utils.Mailer
	appURL    string
	eventName string
}

func NewInvitationService(resolver *GuestResolver, mailer utils.Mailer, appURL, eventName string) *InvitationService {
	return &InvitationService{resolver: resolver, mailer: mailer, appURL: appURL, eventName: eventName}
}

// Send mails the invitation for the guest named by guestToken to email.
func (s *InvitationService) Send(ctx context.Context, email, guestToken string) error {
	email = strings.TrimSpace(email)
	if email == "" || strings.TrimSpace(guestToken) == "" {
		return invalidArgument(MsgMissingEmailFields)
	}

	guest, err := s.resolver.ResolveByToken(ctx, guestToken)
	if err != nil {
		return err
	}

	first := ""
	if fields := strings.Fields(guest.Name); len(fields) > 0 {
		first = fields[0]
	}

	inv := utils.Invitation{
		FirstName:   first,
		EventName:   s.eventName,
		CheckinLink: utils.BuildCheckinLink(s.appURL, guest.CustomID),
	}
	if err := s.mailer.SendInvitation(email, inv); err != nil {
		log.Printf("❌ InvitationService.Send to=%s: %v", utils.MaskEmail(email), err)
		return &Error{Kind: KindStoreError, Message: MsgEmailFailed, Err: err}
	}
	return nil
}
