package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven (envuelto) los adapters de storage.
var ErrNotFound = errors.New("pet not found")

// Repository: una fila por mascota, clave natural user_id (una mascota por usuario).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByUserID(ctx context.Context, userID string) (Pet, error)
	Update(ctx context.Context, p Pet) error
}
