package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// KV implements KVRepo over kv_entries. Writes are upserts.
type KV struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *KV) Get(ctx context.Context, name string) (string, bool, error) {
	query, args := r.b.Select("value").
		From(r.b.Table(tableKV)).
		Where(entsql.EQ("name", name)).
		Query()

	var value string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&value)
	switch {
	case err == sql.ErrNoRows:
		return "", false, nil
	case err != nil:
		return "", false, fmt.Errorf("get %q: %w", name, err)
	}
	return value, true, nil
}

func (r *KV) Put(ctx context.Context, name, value string) error {
	query, args := r.b.Insert(tableKV).
		Columns("name", "value", "updated_at").
		Values(name, value, time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	return nil
}

func (r *KV) Delete(ctx context.Context, name string) error {
	query, args := r.b.Delete(tableKV).
		Where(entsql.EQ("name", name)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}
