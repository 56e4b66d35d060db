package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken: firma inválida, token mal formado o expirado.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUnknownSubject: token válido pero el usuario ya no existe.
	ErrUnknownSubject = errors.New("token subject not found")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite credenciales para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(ctx context.Context, userID string) (string, error)
}

// PasswordHasher encapsula el hash de contraseñas (el hash es opaco para el resto).
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
