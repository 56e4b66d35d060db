package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// PetProvisioner crea la mascota inicial.
// Lo implementa pets.Service; la interfaz evita el ciclo users <-> pets.
type PetProvisioner interface {
	Provision(ctx context.Context, userID string) error
}

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	tokens auth.TokenIssuer
	pets   PetProvisioner
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, hasher auth.PasswordHasher, tokens auth.TokenIssuer, pets PetProvisioner, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		pets:   pets,
		log:    log,
		now:    time.Now,
	}
}

// Session es lo que devuelven register/login.
type Session struct {
	Token string
	User  User
}

// Register crea usuario + mascota + token.
// No es transaccional: si falla la mascota el usuario queda creado (se loguea el id).
func (s *Service) Register(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return Session{}, ErrUsernameTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Session{}, fmt.Errorf("register: lookup username: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return Session{}, fmt.Errorf("register: hash password: %w", err)
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		IsPremium:    false,
		FoodCount:    DefaultFoodCount,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return Session{}, ErrUsernameTaken
		}
		return Session{}, fmt.Errorf("register: create user: %w", err)
	}

	if err := s.pets.Provision(ctx, u.ID); err != nil {
		s.log.Error("user created without pet", map[string]any{
			"user_id": u.ID,
			"err":     err,
		})
		return Session{}, fmt.Errorf("register: provision pet: %w", err)
	}

	token, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("register: issue token: %w", err)
	}

	s.log.Info("user registered", map[string]any{"user_id": u.ID})
	return Session{Token: token, User: u}, nil
}

// Login no distingue usuario inexistente de contraseña incorrecta.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidInput
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("login: lookup username: %w", err)
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("login: issue token: %w", err)
	}
	return Session{Token: token, User: u}, nil
}

func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return User{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, userID)
}

// Exists se usa para rechazar tokens de usuarios borrados.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	_, err := s.repo.GetByID(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
