package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"portfolio-api/internal/model"
)

const DefaultTokenTTL = 7 * 24 * time.Hour

type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  Clock
	parser *jwt.Parser
}

type tokenClaims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewTokenService(secret string, issuer string, ttl time.Duration, clock Clock) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("token signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(clock.Now),
		),
	}, nil
}

func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for identity that expires exactly one TTL after issuance.
func (s *TokenService) Issue(identity model.Identity) (model.IssuedToken, error) {
	if strings.TrimSpace(identity.Username) == "" || !identity.Role.Valid() {
		return model.IssuedToken{}, fmt.Errorf("issue token: %w", model.ErrInvalidInput)
	}

	issuedAt := s.clock.Now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: identity.Username,
		Role:     string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.Username,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return model.IssuedToken{}, fmt.Errorf("sign token: %w", err)
	}

	return model.IssuedToken{Token: signed, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

// Verify returns the token's claims or model.ErrInvalidToken. The cause of
// a rejection is only ever logged.
func (s *TokenService) Verify(tokenString string) (*model.TokenClaims, error) {
	var claims tokenClaims
	_, err := s.parser.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		slog.Debug("token rejected", "reason", rejectionReason(err))
		return nil, model.ErrInvalidToken
	}

	role := model.Role(claims.Role)
	if strings.TrimSpace(claims.Username) == "" || !role.Valid() {
		slog.Debug("token rejected", "reason", "claims")
		return nil, model.ErrInvalidToken
	}

	out := &model.TokenClaims{Username: claims.Username, Role: role}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.UTC()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.UTC()
	}

	return out, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "issuer"
	default:
		return "invalid"
	}
}
