package helpers

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager() (*JWTManager, *fakeClock) {
	clk := &fakeClock{t: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewJWTManager("session-secret", "confirm-secret", 24*time.Hour, time.Hour, "test").WithClock(clk.Now)
	return m, clk
}

func TestJWT_SessionRoundTrip(t *testing.T) {
	m, clk := newTestManager()

	tok, exp, err := m.IssueSession(Claims{UserID: "u1", Email: "a@x.com", IsAdmin: true, Image: "http://img"})
	require.NoError(t, err)
	assert.Equal(t, clk.t.Add(24*time.Hour), exp)

	claims, err := m.Verify(tok, SessionKey)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "http://img", claims.Image)
	assert.Equal(t, clk.t, claims.IssuedAt.Time.UTC())
}

func TestJWT_ConfirmationCarriesOnlySubject(t *testing.T) {
	m, _ := newTestManager()
	tok, _, err := m.IssueConfirmation("u2")
	require.NoError(t, err)

	claims, err := m.Verify(tok, ConfirmationKey)
	require.NoError(t, err)
	assert.Equal(t, "u2", claims.UserID)
	assert.Empty(t, claims.Email)
	assert.False(t, claims.IsAdmin)
}

func TestJWT_ClassesDoNotCrossVerify(t *testing.T) {
	m, _ := newTestManager()
	session, _, err := m.IssueSession(Claims{UserID: "u1"})
	require.NoError(t, err)
	confirm, _, err := m.IssueConfirmation("u1")
	require.NoError(t, err)

	_, err = m.Verify(session, ConfirmationKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
	_, err = m.Verify(confirm, SessionKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWT_AudienceSeparatesClassesEvenWithSharedSecret(t *testing.T) {
	m := NewJWTManager("same", "same", time.Hour, time.Hour, "test")
	confirm, _, err := m.IssueConfirmation("u1")
	require.NoError(t, err)

	_, err = m.Verify(confirm, SessionKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWT_ExpiryBoundary(t *testing.T) {
	m, clk := newTestManager()
	start := clk.t
	tok, exp, err := m.IssueSession(Claims{UserID: "u1"})
	require.NoError(t, err)

	clk.t = exp.Add(-time.Second)
	_, err = m.Verify(tok, SessionKey)
	assert.NoError(t, err)

	clk.t = exp
	_, err = m.Verify(tok, SessionKey)
	assert.ErrorIs(t, err, ErrTokenExpired)

	clk.t = exp.Add(time.Second)
	_, err = m.Verify(tok, SessionKey)
	assert.ErrorIs(t, err, ErrTokenExpired)

	assert.Equal(t, 24*time.Hour, exp.Sub(start))
}

func TestJWT_TamperedPayloadRejected(t *testing.T) {
	m, _ := newTestManager()
	tok, _, err := m.IssueSession(Claims{UserID: "u1", IsAdmin: false})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	payload["isAdmin"] = true
	forged, err := json.Marshal(payload)
	require.NoError(t, err)
	parts[1] = base64.RawURLEncoding.EncodeToString(forged)

	_, err = m.Verify(strings.Join(parts, "."), SessionKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWT_TamperedSignatureRejected(t *testing.T) {
	m, _ := newTestManager()
	tok, _, err := m.IssueSession(Claims{UserID: "u1"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	sig := []byte(parts[2])
	mid := len(sig) / 2
	if sig[mid] == 'A' {
		sig[mid] = 'B'
	} else {
		sig[mid] = 'A'
	}
	parts[2] = string(sig)

	_, err = m.Verify(strings.Join(parts, "."), SessionKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWT_RejectsHostileInput(t *testing.T) {
	m, clk := newTestManager()

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			Issuer:    "test",
			Audience:  jwt.ClaimStrings{"session"},
			ExpiresAt: jwt.NewNumericDate(clk.t.Add(time.Hour)),
		},
	})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"empty":    "",
		"garbage":  "not-a-token",
		"segments": "a.b.c",
		"alg none": unsigned,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := m.Verify(tok, SessionKey)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestJWT_MissingSubjectRejected(t *testing.T) {
	m, _ := newTestManager()
	tok, _, err := m.IssueSession(Claims{})
	require.NoError(t, err)
	_, err = m.Verify(tok, SessionKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestJWT_OtherIssuerRejected(t *testing.T) {
	m, _ := newTestManager()
	other := NewJWTManager("session-secret", "confirm-secret", time.Hour, time.Hour, "someone-else")
	tok, _, err := other.IssueSession(Claims{UserID: "u1"})
	require.NoError(t, err)
	_, err = m.Verify(tok, SessionKey)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
