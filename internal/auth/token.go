package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/blood-bank-service/internal/config"
	"github.com/spec-kit/blood-bank-service/internal/domain"
)

// DefaultTokenTTL is the lifetime of an issued bearer token.
const DefaultTokenTTL = 7 * 24 * time.Hour

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrTokenExpired   = errors.New("token expired")
)

// Claims is the identity carried by a bearer token.
type Claims struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Exp   int64       `json:"exp"` // unix milliseconds
}

// ExpiresAt returns Exp as a time.
func (c Claims) ExpiresAt() time.Time {
	return time.UnixMilli(c.Exp)
}

// Codec turns claims into bearer tokens and back. Encode overwrites Exp.
type Codec interface {
	Encode(claims Claims) (string, error)
	Decode(token string) (*Claims, error)
}

// Option customizes a Codec.
type Option func(*codecOptions)

type codecOptions struct {
	now func() time.Time
	ttl time.Duration
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *codecOptions) { o.now = now }
}

// WithTTL sets the token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *codecOptions) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

func buildOptions(opts []Option) codecOptions {
	o := codecOptions{now: time.Now, ttl: DefaultTokenTTL}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewCodec selects the codec for the configured scheme.
func NewCodec(cfg config.AuthConfig, opts ...Option) (Codec, error) {
	opts = append([]Option{WithTTL(cfg.TokenTTL())}, opts...)
	switch cfg.TokenScheme {
	case config.TokenSchemeSigned, "":
		return NewTokenManager(cfg.JWTSecret, opts...), nil
	case config.TokenSchemeLegacy:
		return NewLegacyCodec(opts...), nil
	default:
		return nil, fmt.Errorf("unsupported token scheme %q", cfg.TokenScheme)
	}
}

// TokenManager issues and validates HS256-signed tokens.
type TokenManager struct {
	secret []byte
	codecOptions
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, opts ...Option) *TokenManager {
	return &TokenManager{secret: []byte(secret), codecOptions: buildOptions(opts)}
}

// Encode signs claims with a fresh expiry.
func (tm *TokenManager) Encode(claims Claims) (string, error) {
	claims.Exp = tm.now().Add(tm.ttl).UnixMilli()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &tokenClaims{Claims: claims})
	return token.SignedString(tm.secret)
}

// Decode verifies the signature and expiry.
func (tm *TokenManager) Decode(tokenStr string) (*Claims, error) {
	parsed := &tokenClaims{}
	// exp is in milliseconds, so the library's seconds-based checks stay off
	_, err := jwt.ParseWithClaims(tokenStr, parsed, func(*jwt.Token) (interface{}, error) {
		return tm.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return checkClaims(parsed.Claims, tm.now())
}

// LegacyCodec is the unsigned base64(JSON) token format. Anyone can mint a
// token for any identity; it exists for compatibility testing only.
type LegacyCodec struct {
	codecOptions
}

// NewLegacyCodec builds the unsigned codec.
func NewLegacyCodec(opts ...Option) *LegacyCodec {
	return &LegacyCodec{codecOptions: buildOptions(opts)}
}

// Encode serializes claims with a fresh expiry.
func (l *LegacyCodec) Encode(claims Claims) (string, error) {
	claims.Exp = l.now().Add(l.ttl).UnixMilli()
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode parses the payload and checks expiry.
func (l *LegacyCodec) Decode(token string) (*Claims, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	return checkClaims(claims, l.now())
}

func checkClaims(claims Claims, now time.Time) (*Claims, error) {
	if claims.ID == "" || !claims.Role.Valid() {
		return nil, ErrMalformedToken
	}
	if claims.Exp < now.UnixMilli() {
		return nil, ErrTokenExpired
	}
	return &claims, nil
}

// tokenClaims adapts Claims to jwt.Claims without adding fields to the payload.
type tokenClaims struct {
	Claims
}

func (c *tokenClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return jwt.NewNumericDate(c.ExpiresAt()), nil
}

func (c *tokenClaims) GetIssuedAt() (*jwt.NumericDate, error)  { return nil, nil }
func (c *tokenClaims) GetNotBefore() (*jwt.NumericDate, error) { return nil, nil }
func (c *tokenClaims) GetIssuer() (string, error)              { return "", nil }
func (c *tokenClaims) GetSubject() (string, error)             { return c.ID, nil }
func (c *tokenClaims) GetAudience() (jwt.ClaimStrings, error)  { return nil, nil }
