// Package jwtauth emite y verifica tokens HS256 (golang-jwt).
package jwtauth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"virtual-pet/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL: una semana.
const DefaultTTL = 7 * 24 * time.Hour

var ErrNotConfigured = errors.New("jwtauth: secret not configured")

// SubjectLookup permite rechazar tokens de usuarios que ya no existen.
type SubjectLookup interface {
	Exists(ctx context.Context, userID string) (bool, error)
}

type Config struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

type claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// Issuer implementa auth.TokenIssuer.
type Issuer struct {
	cfg Config
	now func() time.Time
}

func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrNotConfigured
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	return &Issuer{cfg: cfg, now: time.Now}, nil
}

func (i *Issuer) Issue(ctx context.Context, userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", errors.New("jwtauth: user id required")
	}

	now := i.now().UTC()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.TTL)),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.cfg.Secret)
	if err != nil {
		return "", fmt.Errorf("jwtauth: sign: %w", err)
	}
	return signed, nil
}

// Verifier implementa auth.AuthVerifier.
// Con lookup != nil además exige que el usuario exista (auth.ErrUnknownSubject si no).
type Verifier struct {
	cfg    Config
	lookup SubjectLookup
	now    func() time.Time
}

func NewVerifier(cfg Config, lookup SubjectLookup) (*Verifier, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrNotConfigured
	}
	return &Verifier{cfg: cfg, lookup: lookup, now: time.Now}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrInvalidToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}

	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return v.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	userID := strings.TrimSpace(parsed.UserID)
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing userId", auth.ErrInvalidToken)
	}

	if v.lookup != nil {
		ok, err := v.lookup.Exists(ctx, userID)
		if err != nil {
			return auth.Claims{}, fmt.Errorf("jwtauth: lookup subject: %w", err)
		}
		if !ok {
			return auth.Claims{}, auth.ErrUnknownSubject
		}
	}

	out := auth.Claims{UserID: userID}
	if parsed.IssuedAt != nil {
		out.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		out.ExpiresAt = parsed.ExpiresAt.Time
	}
	return out, nil
}
