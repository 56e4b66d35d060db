package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"virtual-pet/internal/domain/users"
)

type userRepo struct {
	mu         sync.RWMutex
	byID       map[string]users.User
	byUsername map[string]string // username -> id
}

func NewUserRepo() users.Repository {
	return &userRepo{
		byID:       make(map[string]users.User),
		byUsername: make(map[string]string),
	}
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return errors.New("user id required")
	}
	if _, taken := r.byUsername[u.Username]; taken {
		return users.ErrUsernameTaken
	}
	if _, exists := r.byID[u.ID]; exists {
		return errors.New("user already exists")
	}
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	return nil
}

// Update no permite cambiar el username (no hay endpoint para eso).
func (r *userRepo) Update(ctx context.Context, u users.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[u.ID]
	if !exists {
		return users.ErrNotFound
	}
	u.Username = cur.Username
	r.byID[u.ID] = u
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUsername[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return r.byID[id], nil
}
