// Package migrations aplica el schema versionado (golang-migrate) para postgres y sqlite.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var FS embed.FS

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Up lleva el schema a la última versión. Sin cambios pendientes no es error.
// Up se queda con db y lo cierra al terminar (los drivers de migrate toman una
// conexión propia): usar un handle dedicado, no el de los repositorios.
func Up(db *sql.DB, dialect string) error {
	m, err := newMigrate(db, dialect)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up (%s): %w", dialect, err)
	}
	return nil
}

// Version devuelve la versión aplicada (0 si no hay ninguna). También cierra db.
func Version(db *sql.DB, dialect string) (uint, bool, error) {
	m, err := newMigrate(db, dialect)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

func newMigrate(db *sql.DB, dialect string) (*migrate.Migrate, error) {
	if db == nil {
		return nil, errors.New("migrations: db is required")
	}

	var (
		drv     database.Driver
		drvName string
		err     error
	)
	switch dialect {
	case DialectPostgres:
		drv, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
		drvName = "pgx5"
	case DialectSQLite:
		drv, err = sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		drvName = "sqlite"
	default:
		_ = db.Close()
		return nil, fmt.Errorf("migrations: unknown dialect %q", dialect)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %s driver: %w", dialect, err)
	}

	src, err := iofs.New(FS, dialect)
	if err != nil {
		_ = drv.Close()
		return nil, fmt.Errorf("migrations: source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, drvName, drv)
	if err != nil {
		_ = src.Close()
		_ = drv.Close()
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	return m, nil
}
