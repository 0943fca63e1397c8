package mailer

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"
)

// SMTP delivers mail through a plain SMTP relay.
type SMTP struct {
	From   string
	dialer *gomail.Dialer
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{From: from, dialer: gomail.NewDialer(host, port, username, password)}
}

func (s *SMTP) Send(ctx context.Context, to []string, subject, html string) error {
	return s.SendJob(ctx, EmailJob{To: to, Subject: subject, HTML: html})
}

// SendJob dials, sends and hangs up. gomail has no context support, so the
// send runs in its own goroutine and ctx only bounds how long we wait.
func (s *SMTP) SendJob(ctx context.Context, job EmailJob) error {
	if !job.Valid() {
		return errors.New("smtp: incomplete email job")
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", job.To...)
	m.SetHeader("Subject", job.Subject)
	switch {
	case job.HTML != "" && job.Text != "":
		m.SetBody("text/plain", job.Text)
		m.AddAlternative("text/html", job.HTML)
	case job.HTML != "":
		m.SetBody("text/html", job.HTML)
	default:
		m.SetBody("text/plain", job.Text)
	}

	done := make(chan error, 1)
	go func() { done <- s.dialer.DialAndSend(m) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
