package templates

import (
	"strings"
	"time"
)

// Option pattern
type Option func(*EmailData)

func WithCompany(appName, companyName string) Option {
	return func(d *EmailData) {
		d.AppName = appName
		d.CompanyName = strings.TrimSpace(companyName)
	}
}

func WithExpiresAt(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04")
	}
}

// NewConfirmEmailData builds the data for the confirmation mail.
func NewConfirmEmailData(name, email, confirmURL string, opts ...Option) EmailData {
	d := EmailData{Name: name, Email: email, ConfirmURL: confirmURL}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}
