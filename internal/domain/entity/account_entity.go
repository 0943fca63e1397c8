package entity

import (
	"time"
)

// Account is the aggregate root for the identity domain.
// PasswordHash holds a bcrypt digest and never leaves the service layer;
// use View for anything that is serialized outward.
type Account struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	IsAdmin        bool      `json:"isAdmin"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	Image          ImageRef  `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ImageRef points at an asset on the image host. PublicID is the opaque
// identifier needed to delete it later.
type ImageRef struct {
	URL      string
	PublicID string
}

func (r ImageRef) IsZero() bool { return r.URL == "" && r.PublicID == "" }

// AccountView is the redacted account shape returned to clients.
type AccountView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	IsAdmin        bool      `json:"isAdmin"`
	EmailConfirmed bool      `json:"emailConfirmed"`
	Image          string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (a *Account) View() AccountView {
	return AccountView{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		IsAdmin:        a.IsAdmin,
		EmailConfirmed: a.EmailConfirmed,
		Image:          a.Image.URL,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
