package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"virtual-pet/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, user_id, name,
			happiness, energy, intelligence,
			pet_type, color, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Happiness,
		p.Energy,
		p.Intelligence,
		string(p.Type),
		string(p.Color),
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("user %s already has a pet: %w", p.UserID, err)
		}
		return fmt.Errorf("insert pet: %w", err)
	}
	return nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $3,
			happiness = $4,
			energy = $5,
			intelligence = $6,
			pet_type = $7,
			color = $8,
			updated_at = $9
		WHERE id = $1 AND user_id = $2
	`,
		p.ID,
		p.UserID,
		p.Name,
		p.Happiness,
		p.Energy,
		p.Intelligence,
		string(p.Type),
		string(p.Color),
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update pet: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByUserID(ctx context.Context, userID string) (pets.Pet, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id, name,
			happiness, energy, intelligence,
			pet_type, color, updated_at
		FROM pets
		WHERE user_id = $1
	`, userID)

	var p pets.Pet
	var typ, color string
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Happiness,
		&p.Energy,
		&p.Intelligence,
		&typ,
		&color,
		&p.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("select pet: %w", err)
	}
	p.Type = pets.PetType(typ)
	p.Color = pets.Color(color)

	return p, nil
}
