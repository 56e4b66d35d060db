package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"virtual-pet/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

const userColumns = `id, username, password_hash, is_premium, food_count, created_at`

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.PasswordHash, boolToInt(u.IsPremium), u.FoodCount, toMillis(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_premium = ?, food_count = ? WHERE id = ?`,
		boolToInt(u.IsPremium), u.FoodCount, u.ID,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	if username == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UsersRepo) getOne(ctx context.Context, query, arg string) (users.User, error) {
	var (
		u         users.User
		premium   int
		createdAt int64
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &premium, &u.FoodCount, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, fmt.Errorf("select user: %w", err)
	}
	u.IsPremium = premium != 0
	u.CreatedAt = fromMillis(createdAt)
	return u, nil
}
