package mail

import (
	"context"
	"fmt"
	"log"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"

	"campusmarket/internal/config"
)

// Mailer delivers one-time verification codes over SMTP.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

type smtpMailer struct {
	cfg config.SMTP
}

func NewMailer(cfg *config.Config) Mailer {
	return &smtpMailer{cfg: cfg.SMTP}
}

func (m *smtpMailer) SendOTP(ctx context.Context, email, code string) error {
	// No SMTP host configured means local development; the register response
	// carries the code instead.
	if m.cfg.Host == "" {
		log.Printf("SMTP not configured, skipping OTP email to %s", email)
		return nil
	}

	mail := mailyak.New(fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port),
		smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host))

	mail.To(email)
	mail.From(m.cfg.From)
	mail.Subject("Your verification code")
	mail.HTML().Set(fmt.Sprintf(`
		<h1>Email Verification</h1>
		<p>Your CampusMarket verification code is:</p>
		<h2>%s</h2>
		<p>The code expires in 10 minutes. If you did not sign up, ignore this email.</p>
	`, code))

	done := make(chan error, 1)
	go func() {
		done <- mail.Send()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send verification email: %w", err)
		}
	}

	log.Printf("Sent verification email to %s", email)
	return nil
}
