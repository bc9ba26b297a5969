package service

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-api/internal/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenServiceRoundTrip(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	svc, err := NewTokenService(testSecret, "portfolio-api", time.Hour, clock)
	require.NoError(t, err)

	issued, err := svc.Issue(model.Identity{Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), issued.IssuedAt)
	assert.Equal(t, clock.Now().Add(time.Hour), issued.ExpiresAt)

	claims, err := svc.Verify(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, issued.ExpiresAt, claims.ExpiresAt)
}

func TestTokenServiceExpiry(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	svc, err := NewTokenService(testSecret, "portfolio-api", time.Minute, clock)
	require.NoError(t, err)

	issued, err := svc.Issue(model.Identity{Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	clock.Advance(time.Minute - time.Millisecond)
	require.True(t, clock.Now().Before(issued.ExpiresAt))
	_, err = svc.Verify(issued.Token)
	require.NoError(t, err)

	clock.Advance(time.Millisecond)
	require.True(t, issued.ExpiresAt.Equal(clock.Now()))
	_, err = svc.Verify(issued.Token)
	require.ErrorIs(t, err, model.ErrInvalidToken, "a token is expired at its exp instant")

	clock.Advance(time.Second)
	_, err = svc.Verify(issued.Token)
	require.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestTokenServiceRejects(t *testing.T) {
	t.Parallel()

	clock := newFakeClock()
	svc, err := NewTokenService(testSecret, "portfolio-api", time.Hour, clock)
	require.NoError(t, err)

	issued, err := svc.Issue(model.Identity{Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	other, err := NewTokenService(strings.Repeat("x", 32), "portfolio-api", time.Hour, clock)
	require.NoError(t, err)
	foreign, err := other.Issue(model.Identity{Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	otherIssuer, err := NewTokenService(testSecret, "someone-else", time.Hour, clock)
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.Issue(model.Identity{Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	parts := strings.Split(issued.Token, ".")
	require.Len(t, parts, 3)
	truncatedSig := parts[0] + "." + parts[1] + "." + parts[2][:len(parts[2])-2]

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	flipped := bytes.Replace(payload, []byte(`"admin"`), []byte(`"admim"`), 1)
	require.Len(t, flipped, len(payload))
	require.NotEqual(t, payload, flipped)
	payloadFlip := parts[0] + "." + base64.RawURLEncoding.EncodeToString(flipped) + "." + parts[2]

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"username": "admin",
		"role":     "admin",
		"iss":      "portfolio-api",
		"exp":      clock.Now().Add(time.Hour).Unix(),
	})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	badRole := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"role":     "root",
		"iss":      "portfolio-api",
		"exp":      clock.Now().Add(time.Hour).Unix(),
	})
	badRoleToken, err := badRole.SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "admin",
		"role":     "admin",
		"iss":      "portfolio-api",
	})
	noExpiryToken, err := noExpiry.SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":             "",
		"garbage":           "garbage",
		"payload byte flip": payloadFlip,
		"truncated sig":     truncatedSig,
		"wrong secret":      foreign.Token,
		"wrong issuer":      wrongIssuer.Token,
		"alg none":          none,
		"unknown role":      badRoleToken,
		"missing expiry":    noExpiryToken,
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.Verify(token)
			require.ErrorIs(t, err, model.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenServiceIssueValidation(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(testSecret, "portfolio-api", time.Hour, nil)
	require.NoError(t, err)

	_, err = svc.Issue(model.Identity{Username: "", Role: model.RoleAdmin})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Issue(model.Identity{Username: "admin", Role: "root"})
	require.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = NewTokenService("  ", "portfolio-api", time.Hour, nil)
	require.Error(t, err)

	defaulted, err := NewTokenService(testSecret, "portfolio-api", 0, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTokenTTL, defaulted.TTL())
}
