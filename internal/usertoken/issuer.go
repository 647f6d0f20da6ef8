package usertoken

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the access token lifetime.
const DefaultTTL = time.Hour

// Issuer mints access tokens for the auth service.
type Issuer struct {
	secret []byte
	method jwt.SigningMethod
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewIssuer builds an issuer sharing cfg with the verifiers of other services.
func NewIssuer(cfg Config, ttl time.Duration) (*Issuer, error) {
	secret, method, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{
		secret: secret,
		method: method,
		issuer: strings.TrimSpace(cfg.Issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// TTL returns the lifetime of issued tokens.
func (i *Issuer) TTL() time.Duration {
	return i.ttl
}

// Issue signs a token for subject.
func (i *Issuer) Issue(subject, email, role string) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", errors.New("token subject is required")
	}
	now := i.now().UTC()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(i.method, claims).SignedString(i.secret)
}
