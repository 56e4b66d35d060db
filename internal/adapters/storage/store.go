// Package storage arma los repositorios según el driver configurado.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	mem "virtual-pet/internal/adapters/storage/memory"
	"virtual-pet/internal/adapters/storage/migrations"
	pg "virtual-pet/internal/adapters/storage/postgres"
	"virtual-pet/internal/adapters/storage/sqlite"
	"virtual-pet/internal/domain/pets"
	"virtual-pet/internal/domain/users"
)

const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver     string
	DSN        string // postgres
	SQLitePath string
}

// Store es el handle de persistencia: se crea en main, se inyecta y se cierra al apagar.
type Store struct {
	Users users.Repository
	Pets  pets.Repository

	driver string
	db     *sql.DB // nil en memory
}

// NewMemory no necesita Close pero lo soporta.
func NewMemory() *Store {
	return &Store{
		Users:  mem.NewUserRepo(),
		Pets:   mem.NewPetRepo(),
		driver: DriverMemory,
	}
}

// Open abre la base, aplica migraciones (una vez, antes de servir) y arma los repos.
func Open(opts Options) (*Store, error) {
	switch opts.Driver {
	case "", DriverMemory:
		return NewMemory(), nil

	case DriverSQLite:
		if err := migrateWith(func() (*sql.DB, error) { return sqlite.Open(opts.SQLitePath) }, migrations.DialectSQLite); err != nil {
			return nil, err
		}
		db, err := sqlite.Open(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Store{
			Users:  sqlite.NewUsersRepo(db),
			Pets:   sqlite.NewPetsRepo(db),
			driver: DriverSQLite,
			db:     db,
		}, nil

	case DriverPostgres:
		if err := migrateWith(func() (*sql.DB, error) { return pg.Open(opts.DSN) }, migrations.DialectPostgres); err != nil {
			return nil, err
		}
		db, err := pg.Open(opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return &Store{
			Users:  pg.NewUsersRepo(db),
			Pets:   pg.NewPetsRepo(db),
			driver: DriverPostgres,
			db:     db,
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
}

// migrateWith usa un handle aparte: migrations.Up lo cierra.
func migrateWith(open func() (*sql.DB, error), dialect string) error {
	db, err := open()
	if err != nil {
		return fmt.Errorf("open %s for migrations: %w", dialect, err)
	}
	if err := migrations.Up(db, dialect); err != nil {
		return err
	}
	return nil
}

func (s *Store) Driver() string { return s.driver }

// Ping lo usa /health; memory siempre está disponible.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil {
		return errors.New("store not configured")
	}
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
