package utils

import (
	"fmt"
	"html"
	"log"
	"net/smtp"
	"strings"

	"guest-checkin/config"
)

// Invitation is what a guest needs to find the event and be scanned in.
type Invitation struct {
	FirstName string
	EventName string
	// encoded in the guest's QR code
	CheckinLink string
}

type Mailer interface {
	SendInvitation(recipientEmail string, inv Invitation) error
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// BuildCheckinLink points at the guest lookup route for customID.
func BuildCheckinLink(appURL, customID string) string {
	if appURL == "" {
		appURL = "http://localhost:3000"
	}
	return fmt.Sprintf("%s/api/guests/%s", strings.TrimRight(appURL, "/"), customID)
}

// SendInvitation logs the mail instead of sending it when SMTP is not configured.
func (m *SMTPMailer) SendInvitation(recipientEmail string, inv Invitation) error {
	if !m.cfg.Configured() {
		log.Printf("[MOCK EMAIL] invitation to:%s link:%s", recipientEmail, inv.CheckinLink)
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	recipientEmail = safe(recipientEmail)
	firstName := safe(inv.FirstName)
	if firstName == "" {
		firstName = "bạn"
	}
	eventName := safe(inv.EventName)
	link := safe(inv.CheckinLink)

	from := fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.Username)
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%s", m.cfg.Host, m.cfg.Port)

	subject := fmt.Sprintf("Lịch trình sự kiện %s", eventName)
	boundary := "----=_GUEST_INVITATION_BOUNDARY"

	plainBody := fmt.Sprintf(
		"Xin chào bạn %s,\n\n"+
			"%s sẽ chính thức diễn ra vào ngày mai.\n"+
			"Vui lòng xuất trình mã QR tại quầy lễ tân, hoặc mở đường dẫn sau:\n%s\n",
		firstName, eventName, link,
	)

	htmlBody := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>%[2]s</title></head>
<body style="font-family:Arial, sans-serif; max-width:600px; margin:0 auto; line-height:1.6;">
  <p>Xin chào bạn <strong>%[1]s</strong>,</p>
  <p><strong>%[2]s</strong> sẽ chính thức diễn ra vào ngày mai.</p>
  <p>Vui lòng xuất trình mã QR tại quầy lễ tân, hoặc mở đường dẫn sau:</p>
  <p style="background-color:#ecf0f1; padding:15px; border-radius:5px; font-family:monospace;">%[3]s</p>
</body>
</html>`,
		html.EscapeString(firstName), html.EscapeString(eventName), html.EscapeString(link),
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(plainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(htmlBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, m.cfg.Username, []string{recipientEmail}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send invitation email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("Invitation email sent to %s", recipientEmail)
	return nil
}
