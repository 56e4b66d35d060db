package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/domain/users"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestUsersRepo_CreateUniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	err := repo.Create(context.Background(), users.User{ID: "u1", Username: "ana"})
	assert.ErrorIs(t, err, users.ErrUsernameTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("u1", "ana", "hash", false, 10, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), users.User{
		ID: "u1", Username: "ana", PasswordHash: "hash", FoodCount: 10, CreatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cols := []string{"id", "username", "password_hash", "is_premium", "food_count", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("u1", "ana", "hash", true, 7, now))

	u, err := repo.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, users.User{ID: "u1", Username: "ana", PasswordHash: "hash", IsPremium: true, FoodCount: 7, CreatedAt: now}, u)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE username").
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(cols))

	_, err = repo.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, users.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUsersRepo_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUsersRepo(db)

	mock.ExpectExec("UPDATE users").
		WithArgs("u1", true, 4).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), users.User{ID: "u1", IsPremium: true, FoodCount: 4})
	assert.ErrorIs(t, err, users.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByUserID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	cols := []string{"id", "user_id", "name", "happiness", "energy", "intelligence", "pet_type", "color", "updated_at"}
	mock.ExpectQuery("SELECT (.+) FROM pets").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", "Buddy", 62, 98, 34, "dragon", "gold", now))

	p, err := repo.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, pets.PetTypeDragon, p.Type)
	assert.Equal(t, pets.ColorGold, p.Color)
	assert.Equal(t, pets.Stats{Happiness: 62, Energy: 98, Intelligence: 34}, p.Stats)

	_, err = repo.GetByUserID(context.Background(), "  ")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p := pets.NewPet("p1", "u1", now)
	p.Name = "Rex"

	mock.ExpectExec("UPDATE pets").
		WithArgs("p1", "u1", "Rex", 50, 50, 50, "cat", "orange", now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Update(context.Background(), p))

	mock.ExpectExec("UPDATE pets").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Update(context.Background(), p), pets.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
