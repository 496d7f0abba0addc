package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Validation failure classes. Callers log the distinction but must surface
// all of them to clients as a single unauthorized response.
var (
	ErrInvalidToken             = errors.New("jwt: invalid token")
	ErrExpired                  = errors.New("jwt: token expired")
	ErrIssuerOrAudienceMismatch = errors.New("jwt: issuer or audience mismatch")
)

// Claims defines the token payload.
type Claims struct {
	Username string `json:"username,omitempty"`
	jwtlib.RegisteredClaims
}

// SubjectID returns the stable identity identifier carried by the token, or
// empty when the subject claim is missing.
func (c *Claims) SubjectID() string {
	return c.Subject
}

// Config holds the immutable signing parameters loaded at startup.
type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// Service mints and validates bearer tokens against a fixed signing config.
type Service struct {
	cfg Config
}

// NewService constructs a Service from signing configuration.
func NewService(cfg Config) Service {
	return Service{cfg: cfg}
}

// Issue signs a token for the given subject with the configured issuer,
// audience and expiry offset.
func (s Service) Issue(subjectID, username string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    s.cfg.Issuer,
			Audience:  jwtlib.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.cfg.TTL)),
		},
	}
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// Parse verifies signature, issuer, audience and expiry. Expiry is checked
// with zero leeway: a token one second past its deadline is rejected.
func (s Service) Parse(token string) (*Claims, error) {
	parsed, err := jwtlib.ParseWithClaims(token, &Claims{}, func(t *jwtlib.Token) (interface{}, error) {
		return []byte(s.cfg.Secret), nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithIssuer(s.cfg.Issuer),
		jwtlib.WithAudience(s.cfg.Audience),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwtlib.ErrTokenInvalidIssuer), errors.Is(err, jwtlib.ErrTokenInvalidAudience):
		return ErrIssuerOrAudienceMismatch
	default:
		return ErrInvalidToken
	}
}
