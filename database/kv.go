package database

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/NataliiaKozak/landing-frauen-fotoshooting/kv"
)

// KV stores the visitor scopes in the kv_item table.
type KV struct {
	db      *sql.DB
	dialect Dialect
}

func NewKV(db *sql.DB, dialect Dialect) *KV {
	return &KV{db, dialect}
}

func (k *KV) Scope(id string) kv.Store {
	return kvScope{k, id}
}

// rebind rewrites ? placeholders to $n for postgres.
func (k *KV) rebind(query string) string {
	if k.dialect != Postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type kvScope struct {
	*KV
	id string
}

func (s kvScope) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.
		QueryRowContext(ctx, s.rebind("SELECT value FROM kv_item WHERE scope = ? AND key = ?"), s.id, key).
		Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "db.kv.get")
	}
	return value, true, nil
}

func (s kvScope) SetItem(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO kv_item (scope, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at`),
		s.id,
		key,
		value,
		time.Now().UTC(),
	)
	return errors.Wrap(err, "db.kv.set")
}

func (s kvScope) RemoveItem(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.rebind(`
		DELETE FROM kv_item
		WHERE scope = ?
			AND key = ?`),
		s.id,
		key,
	)
	return errors.Wrap(err, "db.kv.remove")
}
