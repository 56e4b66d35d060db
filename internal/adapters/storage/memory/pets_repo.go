package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"virtual-pet/internal/domain/pets"
)

type petRepo struct {
	mu     sync.RWMutex
	byUser map[string]pets.Pet
}

// NewPetRepo indexa por user_id: hay una mascota por usuario.
func NewPetRepo() pets.Repository {
	return &petRepo{
		byUser: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" || strings.TrimSpace(p.UserID) == "" {
		return errors.New("pet id and user id required")
	}
	if _, exists := r.byUser[p.UserID]; exists {
		return fmt.Errorf("user %s already has a pet", p.UserID)
	}
	r.byUser[p.UserID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byUser[p.UserID]
	if !exists || cur.ID != p.ID {
		return pets.ErrNotFound
	}
	r.byUser[p.UserID] = p
	return nil
}

func (r *petRepo) GetByUserID(ctx context.Context, userID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[userID]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}
