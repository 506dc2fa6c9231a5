package database

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/config"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// DialectOf picks the driver from the -db-url value: postgres URLs go to
// pgx, anything else is a SQLite file path.
func DialectOf(url string) Dialect {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return Postgres
	}
	return SQLite
}

func Open(cfg config.Config) (db *sql.DB, dialect Dialect, err error) {
	dialect = DialectOf(cfg.DBUrl)

	driver := "sqlite3"
	if dialect == Postgres {
		driver = "pgx"
	}
	db, err = sql.Open(driver, cfg.DBUrl)
	if err != nil {
		return nil, dialect, errors.Wrap(err, "database.open")
	}

	if dialect == SQLite {
		_, err = db.Exec("PRAGMA busy_timeout = 5000")
		if err != nil {
			db.Close()
			return nil, dialect, errors.Wrap(err, "database.pragma")
		}
		// one writer at a time keeps sqlite from returning SQLITE_BUSY
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(2 * time.Hour)

	err = migrateDB(db, dialect)
	if err != nil {
		db.Close()
		return nil, dialect, errors.Wrap(err, "database.migrate")
	}

	return db, dialect, nil
}
