package jwtauth

import (
	"context"
	"errors"
	"testing"
	"time"

	"virtual-pet/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookupFunc func(ctx context.Context, userID string) (bool, error)

func (f lookupFunc) Exists(ctx context.Context, userID string) (bool, error) { return f(ctx, userID) }

var testCfg = Config{Secret: []byte("test-secret"), Issuer: "virtual-pet", TTL: time.Hour}

func TestIssueVerify_RoundTrip(t *testing.T) {
	iss, err := NewIssuer(testCfg)
	require.NoError(t, err)
	ver, err := NewVerifier(testCfg, nil)
	require.NoError(t, err)

	token, err := iss.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	c, err := ver.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.WithinDuration(t, c.IssuedAt.Add(time.Hour), c.ExpiresAt, time.Second)
}

func TestIssuer_DefaultTTL(t *testing.T) {
	iss, err := NewIssuer(Config{Secret: []byte("k")})
	require.NoError(t, err)
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	iss.now = func() time.Time { return fixed }

	token, err := iss.Issue(context.Background(), "u")
	require.NoError(t, err)

	var c claims
	_, _, err = jwt.NewParser().ParseUnverified(token, &c)
	require.NoError(t, err)
	assert.Equal(t, fixed.Add(7*24*time.Hour), c.ExpiresAt.Time.UTC())
	assert.Equal(t, "u", c.UserID)
}

func TestVerify_Expired(t *testing.T) {
	iss, _ := NewIssuer(testCfg)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := iss.Issue(context.Background(), "user-1")
	require.NoError(t, err)

	ver, _ := NewVerifier(testCfg, nil)
	_, err = ver.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_WrongSecretOrIssuer(t *testing.T) {
	iss, _ := NewIssuer(Config{Secret: []byte("other"), Issuer: "virtual-pet"})
	token, _ := iss.Issue(context.Background(), "user-1")

	ver, _ := NewVerifier(testCfg, nil)
	_, err := ver.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	iss, _ = NewIssuer(Config{Secret: testCfg.Secret, Issuer: "someone-else"})
	token, _ = iss.Issue(context.Background(), "user-1")
	_, err = ver.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = ver.Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testCfg.Issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "user-1",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString(testCfg.Secret)
	require.NoError(t, err)

	ver, _ := NewVerifier(testCfg, nil)
	_, err = ver.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerify_SubjectLookup(t *testing.T) {
	iss, _ := NewIssuer(testCfg)
	token, _ := iss.Issue(context.Background(), "user-1")

	gone, _ := NewVerifier(testCfg, lookupFunc(func(context.Context, string) (bool, error) { return false, nil }))
	_, err := gone.Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnknownSubject)

	boom := errors.New("db down")
	broken, _ := NewVerifier(testCfg, lookupFunc(func(context.Context, string) (bool, error) { return false, boom }))
	_, err = broken.Verify(context.Background(), token)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, auth.ErrUnknownSubject)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := NewIssuer(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = NewVerifier(Config{}, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
