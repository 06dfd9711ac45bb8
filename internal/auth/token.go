package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/apiempleados/api-empleados/internal/shared"
)

const (
	// DefaultIssuer is the iss claim of every token.
	DefaultIssuer = "gestion-centro-api"
	// DefaultTokenTTL is the lifetime of an issued token.
	DefaultTokenTTL = 24 * time.Hour
	// MinSigningKeyBytes is the minimum HS256 key size (256 bits).
	MinSigningKeyBytes = 32
)

// ErrWeakSigningKey is returned when key material is shorter than MinSigningKeyBytes.
var ErrWeakSigningKey = errors.New("auth: signing key must be at least 32 bytes")

// SigningKey is the immutable HMAC secret shared by issuing and verification.
type SigningKey struct {
	b []byte
}

// NewSigningKey copies raw into a SigningKey.
func NewSigningKey(raw []byte) (SigningKey, error) {
	if len(raw) < MinSigningKeyBytes {
		return SigningKey{}, ErrWeakSigningKey
	}
	b := make([]byte, len(raw))
	copy(b, raw)
	return SigningKey{b: b}, nil
}

// ParseSigningKey decodes base64 (standard or URL alphabet, padded or not).
func ParseSigningKey(encoded string) (SigningKey, error) {
	encoded = strings.TrimSpace(encoded)
	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if raw, err := enc.DecodeString(encoded); err == nil {
			return NewSigningKey(raw)
		}
	}
	return SigningKey{}, errors.New("auth: signing key is not valid base64")
}

// GenerateSigningKey returns a random 256-bit key. Tokens signed with it do not
// survive a restart.
func GenerateSigningKey() (SigningKey, error) {
	raw := make([]byte, MinSigningKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return SigningKey{}, fmt.Errorf("auth: generate signing key: %w", err)
	}
	return SigningKey{b: raw}, nil
}

// Claims is the decoded content of a valid token.
type Claims struct {
	Subject   string
	Issuer    string
	Roles     RoleSet
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims is the wire form: registered claims plus a comma-joined roles string.
type tokenClaims struct {
	Roles string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService issues and decodes HS256 bearer tokens.
type TokenService struct {
	key    SigningKey
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// TokenOption configures a TokenService.
type TokenOption func(*TokenService)

// WithIssuer overrides the iss claim.
func WithIssuer(issuer string) TokenOption {
	return func(s *TokenService) {
		if issuer != "" {
			s.issuer = issuer
		}
	}
}

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) TokenOption {
	return func(s *TokenService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		if now != nil {
			s.now = now
		}
	}
}

// NewTokenService constructs a TokenService around key.
func NewTokenService(key SigningKey, opts ...TokenOption) (*TokenService, error) {
	if len(key.b) < MinSigningKeyBytes {
		return nil, ErrWeakSigningKey
	}
	s := &TokenService{key: key, issuer: DefaultIssuer, ttl: DefaultTokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the lifetime applied to issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject carrying roles.
func (s *TokenService) Issue(subject string, roles RoleSet) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Roles: roles.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key.b)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Decode verifies signature, algorithm, issuer and expiry. Every failure wraps
// shared.ErrInvalidToken.
func (s *TokenService) Decode(token string) (*Claims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return nil, shared.ErrInvalidToken
	}
	out := &Claims{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
		Roles:   ParseRoleSet(claims.Roles),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}

func (s *TokenService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return s.key.b, nil
}
