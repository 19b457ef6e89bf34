package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bloodlink/donation-system/internal/core/domain"
	"github.com/bloodlink/donation-system/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// TokenIssuer mints and parses HS256-signed bearer tokens carrying
// {subject = username, role}. The role claim is the only thing downstream
// authorization reads; it is trusted as of issuance and not re-checked
// against the credential store per request.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a signed bearer token for the user.
func (i *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(i.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Parse recovers the subject and role from a token. Bad signatures,
// malformed tokens, wrong signing algorithms, and expired tokens all map to
// domain.ErrInvalidToken.
func (i *TokenIssuer) Parse(token string) (ports.TokenClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !tkn.Valid {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return ports.TokenClaims{}, domain.ErrInvalidToken
	}

	return ports.TokenClaims{Subject: sub, Role: domain.Role(role)}, nil
}
