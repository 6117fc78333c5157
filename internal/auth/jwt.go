package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidToken = errors.New("invalid session token")

const issuer = "product-console"

// Signer issues and verifies session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner creates a Signer; tokens expire after ttl.
func NewSigner(secret string, ttl time.Duration) (*Signer, error) {
	if secret == "" {
		return nil, errors.New("session secret is empty")
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue returns a signed token carrying sessionID.
func (s *Signer) Issue(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Token is a verified session token.
type Token struct {
	SessionID string
	ExpiresAt time.Time
}

// Verify checks a token's signature, issuer and expiry.
func (s *Signer) Verify(tokenStr string) (Token, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return Token{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return Token{}, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}
	return Token{SessionID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Parse verifies a token and returns the session id it carries.
func (s *Signer) Parse(tokenStr string) (string, error) {
	t, err := s.Verify(tokenStr)
	if err != nil {
		return "", err
	}
	return t.SessionID, nil
}

// NeedsRenewal reports whether t has used up more than half its lifetime.
// Renewing it keeps an active session alive as long as it keeps being used.
func (s *Signer) NeedsRenewal(t Token) bool {
	return t.ExpiresAt.Sub(s.now()) < s.ttl/2
}
