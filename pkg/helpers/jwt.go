package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// KeyClass selects which secret signs and verifies a token. Session and
// confirmation tokens never share a key, and each class is also pinned to
// its own audience so a token of one class is rejected by the other.
type KeyClass int

const (
	SessionKey KeyClass = iota
	ConfirmationKey
)

func (k KeyClass) audience() string {
	if k == ConfirmationKey {
		return "confirm-email"
	}
	return "session"
}

var (
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenExpired   = errors.New("token expired")
)

// JWTManager handles generation and validation of JWT tokens
type JWTManager struct {
	SessionSecret []byte
	ConfirmSecret []byte
	SessionTTL    time.Duration
	ConfirmTTL    time.Duration
	Issuer        string

	now func() time.Time
}

func NewJWTManager(sessionSecret, confirmSecret string, sessionTTL, confirmTTL time.Duration, issuer string) *JWTManager {
	return &JWTManager{
		SessionSecret: []byte(sessionSecret),
		ConfirmSecret: []byte(confirmSecret),
		SessionTTL:    sessionTTL,
		ConfirmTTL:    confirmTTL,
		Issuer:        issuer,
		now:           time.Now,
	}
}

// WithClock swaps the time source used for issuing and verifying.
func (m *JWTManager) WithClock(now func() time.Time) *JWTManager {
	m.now = now
	return m
}

// Claims is the identity snapshot embedded in a token. Email, IsAdmin and
// Image are informational only; authorization decisions re-read the store.
type Claims struct {
	UserID  string `json:"userId"`
	Email   string `json:"email,omitempty"`
	IsAdmin bool   `json:"isAdmin"`
	Image   string `json:"image,omitempty"`
	jwt.RegisteredClaims
}

func (m *JWTManager) secret(class KeyClass) []byte {
	if class == ConfirmationKey {
		return m.ConfirmSecret
	}
	return m.SessionSecret
}

// Issue signs claims for the given key class, valid for ttl from now.
func (m *JWTManager) Issue(claims Claims, class KeyClass, ttl time.Duration) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(ttl)
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		Issuer:    m.Issuer,
		Audience:  jwt.ClaimStrings{class.audience()},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret(class))
	if err != nil {
		return "", time.Time{}, err
	}
	return s, claims.ExpiresAt.Time, nil
}

func (m *JWTManager) IssueSession(claims Claims) (string, time.Time, error) {
	return m.Issue(claims, SessionKey, m.SessionTTL)
}

// IssueConfirmation binds only the subject id.
func (m *JWTManager) IssueConfirmation(userID string) (string, time.Time, error) {
	return m.Issue(Claims{UserID: userID}, ConfirmationKey, m.ConfirmTTL)
}

// Verify checks signature, audience and expiry. Any failure is reported as
// ErrTokenExpired or ErrTokenMalformed; it never panics on hostile input.
func (m *JWTManager) Verify(tokenStr string, class KeyClass) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret(class), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(class.audience()),
		jwt.WithIssuer(m.Issuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if claims.UserID == "" || claims.UserID != claims.Subject {
		return nil, fmt.Errorf("%w: missing subject", ErrTokenMalformed)
	}
	return claims, nil
}
