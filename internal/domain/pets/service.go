package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"virtual-pet/internal/domain/users"
	"virtual-pet/internal/ports/payments"

	"github.com/google/uuid"
)

// Action nombra lo que se despacha (también es la label de métricas).
type Action string

const (
	ActionEat        Action = "eat"
	ActionPlay       Action = "play"
	ActionStudy      Action = "study"
	ActionReset      Action = "reset"
	ActionRename     Action = "rename"
	ActionAppearance Action = "appearance"
	ActionUpgrade    Action = "upgrade"
	ActionDowngrade  Action = "downgrade"
	ActionPurchase   Action = "purchase_food"
)

// ActionRecorder recibe el resultado de cada dispatch (métricas).
type ActionRecorder interface {
	RecordAction(action, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordAction(string, string) {}

// Outcome es lo que reporta el dispatcher: estado nuevo + delta por stat.
type Outcome struct {
	Pet     Pet
	User    users.User
	Changes Changes
}

// EntitlementsOf se evalúa sobre el usuario recién leído; no se cachea entre requests.
func EntitlementsOf(u users.User) Entitlements {
	return Entitlements{Premium: u.IsPremium}
}

// Service es el dispatcher de acciones: carga, llama al motor, persiste, reporta.
// Si el motor rechaza, no se escribe nada.
type Service struct {
	repo     Repository
	users    users.Repository
	payments payments.Authorizer
	recorder ActionRecorder
	locks    *keyedMutex
	now      func() time.Time
}

func NewService(repo Repository, userRepo users.Repository) *Service {
	return &Service{
		repo:     repo,
		users:    userRepo,
		recorder: nopRecorder{},
		locks:    newKeyedMutex(),
		now:      time.Now,
	}
}

// WithPayments configura el autorizador de cobros para PurchaseFood.
func (s *Service) WithPayments(a payments.Authorizer) *Service {
	s.payments = a
	return s
}

func (s *Service) WithRecorder(r ActionRecorder) *Service {
	if r != nil {
		s.recorder = r
	}
	return s
}

// Provision crea la mascota por defecto (se llama al registrar).
func (s *Service) Provision(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return errors.New("provision: user id required")
	}
	p := NewPet(uuid.NewString(), userID, s.now().UTC())
	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("provision: create pet: %w", err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, userID string) (Pet, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, reject(ReasonNotFound, "Pet not found")
		}
		return Pet{}, fmt.Errorf("get pet: %w", err)
	}
	return p, nil
}

func (s *Service) Eat(ctx context.Context, userID string) (Outcome, error) {
	return s.dispatch(ctx, ActionEat, userID, true, func(st *state) error {
		stats, wallet, err := Eat(st.pet.Stats, Wallet{FoodCount: st.user.FoodCount})
		if err != nil {
			return err
		}
		st.setStats(stats)
		st.setFood(wallet.FoodCount)
		return nil
	})
}

func (s *Service) Play(ctx context.Context, userID string) (Outcome, error) {
	return s.dispatch(ctx, ActionPlay, userID, true, func(st *state) error {
		stats, err := Play(st.pet.Stats, EntitlementsOf(st.user))
		if err != nil {
			return err
		}
		st.setStats(stats)
		return nil
	})
}

func (s *Service) Study(ctx context.Context, userID string) (Outcome, error) {
	return s.dispatch(ctx, ActionStudy, userID, true, func(st *state) error {
		stats, err := Study(st.pet.Stats, EntitlementsOf(st.user))
		if err != nil {
			return err
		}
		st.setStats(stats)
		return nil
	})
}

// Reset (testing): stats a 50 y comida a 10, sin importar el estado previo.
func (s *Service) Reset(ctx context.Context, userID string) (Outcome, error) {
	return s.dispatch(ctx, ActionReset, userID, true, func(st *state) error {
		stats, wallet := Reset()
		st.setStats(stats)
		st.setFood(wallet.FoodCount)
		return nil
	})
}

func (s *Service) Rename(ctx context.Context, userID, name string) (Outcome, error) {
	return s.dispatch(ctx, ActionRename, userID, true, func(st *state) error {
		n, err := Rename(name)
		if err != nil {
			return err
		}
		st.pet.Name = n
		st.petDirty = true
		return nil
	})
}

func (s *Service) UpdateAppearance(ctx context.Context, userID string, in AppearanceChange) (Outcome, error) {
	return s.dispatch(ctx, ActionAppearance, userID, true, func(st *state) error {
		a, err := Restyle(st.pet.Appearance, in, EntitlementsOf(st.user))
		if err != nil {
			return err
		}
		st.pet.Appearance = a
		st.petDirty = true
		return nil
	})
}

// Upgrade es idempotente (endpoint de testing, no hay billing).
func (s *Service) Upgrade(ctx context.Context, userID string) (Outcome, error) {
	return s.dispatch(ctx, ActionUpgrade, userID, false, func(st *state) error {
		if !st.user.IsPremium {
			st.user.IsPremium = true
			st.userDirty = true
		}
		return nil
	})
}

// Downgrade además devuelve a cat un tipo premium. Si no hay mascota solo baja el plan.
func (s *Service) Downgrade(ctx context.Context, userID string) (Outcome, error) {
	return s.dispatch(ctx, ActionDowngrade, userID, false, func(st *state) error {
		if st.user.IsPremium {
			st.user.IsPremium = false
			st.userDirty = true
		}
		if st.hasPet {
			if a := Downgrade(st.pet.Appearance); a != st.pet.Appearance {
				st.pet.Appearance = a
				st.petDirty = true
			}
		}
		return nil
	})
}

// PurchaseFood valida, autoriza el cobro y recién ahí acredita.
func (s *Service) PurchaseFood(ctx context.Context, userID string, amount int, price float64) (Outcome, error) {
	return s.dispatch(ctx, ActionPurchase, userID, false, func(st *state) error {
		wallet, err := PurchaseFood(Wallet{FoodCount: st.user.FoodCount}, amount, price)
		if err != nil {
			return err
		}
		if s.payments != nil {
			err := s.payments.Authorize(ctx, payments.Charge{UserID: st.user.ID, Amount: amount, Price: price})
			if err != nil {
				return fmt.Errorf("authorize payment: %w", err)
			}
		}
		st.setFood(wallet.FoodCount)
		return nil
	})
}

// state es el working set de un dispatch.
type state struct {
	user      users.User
	pet       Pet
	hasPet    bool
	userDirty bool
	petDirty  bool
}

func (st *state) setStats(v Stats) {
	st.pet.Stats = v
	st.petDirty = true
}

func (st *state) setFood(n int) {
	st.user.FoodCount = n
	st.userDirty = true
}

// dispatch: lock por usuario -> una lectura por entidad -> motor -> una escritura por entidad.
// requirePet=false tolera la ausencia de mascota (acciones sobre la cuenta).
func (s *Service) dispatch(ctx context.Context, action Action, userID string, requirePet bool, fn func(*state) error) (Outcome, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Outcome{}, reject(ReasonNotFound, "User not found")
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	out, err := s.run(ctx, userID, requirePet, fn)
	s.recorder.RecordAction(string(action), outcomeLabel(err))
	if err != nil {
		var rej *Rejection
		if errors.As(err, &rej) {
			return Outcome{}, err
		}
		return Outcome{}, fmt.Errorf("%s: %w", action, err)
	}
	return out, nil
}

func (s *Service) run(ctx context.Context, userID string, requirePet bool, fn func(*state) error) (Outcome, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return Outcome{}, reject(ReasonNotFound, "User not found")
		}
		return Outcome{}, fmt.Errorf("load user: %w", err)
	}

	st := &state{user: u}

	p, err := s.repo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		st.pet = p
		st.hasPet = true
	case errors.Is(err, ErrNotFound):
		if requirePet {
			return Outcome{}, reject(ReasonNotFound, "Pet not found")
		}
	default:
		return Outcome{}, fmt.Errorf("load pet: %w", err)
	}

	before := st.pet.Stats
	if err := fn(st); err != nil {
		return Outcome{}, err
	}

	if st.userDirty {
		if err := s.users.Update(ctx, st.user); err != nil {
			return Outcome{}, fmt.Errorf("update user: %w", err)
		}
	}
	if st.petDirty {
		st.pet.UpdatedAt = s.now().UTC()
		if err := s.repo.Update(ctx, st.pet); err != nil {
			return Outcome{}, fmt.Errorf("update pet: %w", err)
		}
	}

	return Outcome{
		Pet:     st.pet,
		User:    st.user,
		Changes: st.pet.Stats.Since(before),
	}, nil
}

func outcomeLabel(err error) string {
	if err == nil {
		return "ok"
	}
	var rej *Rejection
	if errors.As(err, &rej) {
		return string(rej.Reason)
	}
	if errors.Is(err, payments.ErrDeclined) {
		return "declined"
	}
	return "error"
}
