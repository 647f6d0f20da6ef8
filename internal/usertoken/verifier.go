package usertoken

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"jobboard/pkg/domain"
)

const (
	DefaultAlgorithm = "HS256"
	maxLeeway        = 30 * time.Second
)

// Roles carried in the "role" claim.
const (
	RoleCandidate = string(domain.RoleCandidate)
	RoleEmployer  = string(domain.RoleEmployer)
)

// ErrInvalidToken is returned for every verification failure. Callers must
// not distinguish between bad signatures, expiry or malformed input.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the claim set shared by all services.
type Claims struct {
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim.
func (c Claims) UserID() string {
	return c.Subject
}

// Verifier validates an access token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Config configures the shared-secret trust domain.
type Config struct {
	Secret    string
	Algorithm string
	Issuer    string
	Leeway    time.Duration
}

// HMACVerifier verifies tokens signed with the shared secret.
type HMACVerifier struct {
	secret []byte
	alg    string
	issuer string
	leeway time.Duration
}

// NewHMACVerifier validates cfg and returns a verifier that accepts only the
// configured HS* algorithm.
func NewHMACVerifier(cfg Config) (*HMACVerifier, error) {
	secret, method, err := resolve(cfg)
	if err != nil {
		return nil, err
	}
	leeway := cfg.Leeway
	if leeway < 0 {
		leeway = 0
	}
	if leeway > maxLeeway {
		leeway = maxLeeway
	}
	return &HMACVerifier{
		secret: secret,
		alg:    method.Alg(),
		issuer: strings.TrimSpace(cfg.Issuer),
		leeway: leeway,
	}, nil
}

// Verify parses token and checks signature, algorithm, expiry and subject.
func (v *HMACVerifier) Verify(token string) (Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Claims{}, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.alg}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := Claims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}

func resolve(cfg Config) ([]byte, jwt.SigningMethod, error) {
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, nil, errors.New("token secret is required")
	}
	alg := strings.ToUpper(strings.TrimSpace(cfg.Algorithm))
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, nil, fmt.Errorf("unsupported token algorithm %q", cfg.Algorithm)
	}
	return []byte(cfg.Secret), method, nil
}
