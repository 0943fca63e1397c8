package mailer

import (
	"context"
	"errors"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an HTML email to every recipient in one Mailgun message.
func (m *Mailgun) Send(ctx context.Context, to []string, subject, html string) error {
	return m.SendJob(ctx, EmailJob{To: to, Subject: subject, HTML: html})
}

// SendJob delivers a queued job; Text is used as the plain part when present.
func (m *Mailgun) SendJob(ctx context.Context, job EmailJob) error {
	if !job.Valid() {
		return errors.New("mailgun: incomplete email job")
	}
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, job.Subject, job.Text, job.To...)
	if job.HTML != "" {
		msg.SetHtml(job.HTML)
	}
	_, _, err := client.Send(ctx, msg)
	return err
}
