package ports

import "github.com/bloodlink/donation-system/internal/core/domain"

// TokenClaims is the identity recovered from a parsed bearer token. The role
// is trusted as of issuance time; a role change takes effect on next login.
type TokenClaims struct {
	Subject string
	Role    domain.Role
}

// TokenIssuer mints and parses signed bearer tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
	// Parse returns domain.ErrInvalidToken when the signature does not
	// verify, the token is malformed, or it has expired.
	Parse(token string) (TokenClaims, error)
}
