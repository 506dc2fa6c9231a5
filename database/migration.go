package database

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations
var dbMigrations embed.FS

func migrateDB(db *sql.DB, dialect Dialect) error {
	src, err := iofs.New(dbMigrations, "migrations/"+string(dialect))
	if err != nil {
		return err
	}

	var dst migratedb.Driver
	switch dialect {
	case Postgres:
		dst, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		dst, err = sqlite3.WithInstance(db, &sqlite3.Config{})
	}
	if err != nil {
		return err
	}

	migrator, err := migrate.NewWithInstance("iofs", src, string(dialect), dst)
	if err != nil {
		return err
	}

	err = migrator.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		// db already up to date
		break
	case err != nil:
		return err
	}
	return nil
}
