package email

import (
	"context"
	"fmt"

	"github.com/keighl/postmark"
)

// Mailer sends verification mail through Postmark.
type Mailer struct {
	client *postmark.Client
	from   string
}

// NewMailer builds a Mailer from a Postmark server token and sender address.
func NewMailer(serverToken, from string) *Mailer {
	return &Mailer{
		client: postmark.NewClient(serverToken, ""),
		from:   from,
	}
}

// SendVerificationCode delivers the 6-digit code to the recipient. The mail
// is the only channel the code ever travels through.
func (m *Mailer) SendVerificationCode(_ context.Context, to, code string) error {
	body := fmt.Sprintf("Your verification code is: %s. This code is valid for 1 hour.", code)
	html := fmt.Sprintf(
		"<p>Thank you for creating an account with our service.</p>"+
			"<p>Your verification code is:</p><h1>%s</h1>"+
			"<p>This code is valid for <strong>1 hour</strong>.</p>"+
			"<p>If you didn't request this verification, please ignore this email.</p>",
		code,
	)

	_, err := m.client.SendEmail(postmark.Email{
		From:     m.from,
		To:       to,
		Subject:  "Email Verification",
		TextBody: body,
		HtmlBody: html,
	})
	if err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}
