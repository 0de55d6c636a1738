package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/captive-portal-api/infrastructure/database/postgres"
)

const documentsTable = "documents"

type pinger interface {
	Ping(ctx context.Context) error
}

type postgresStore struct {
	conn postgres.Queryer
}

// NewPostgresStore keeps documents in the jsonb documents table.
func NewPostgresStore(conn postgres.Queryer) DocumentStore {
	return &postgresStore{conn: conn}
}

func (s *postgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := squirrel.
		Select("value").
		From(documentsTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = s.conn.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return value, true, nil
}

func (s *postgresStore) Put(ctx context.Context, key string, value []byte) error {
	query, args, err := squirrel.
		Insert(documentsTable).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	query, args, err := squirrel.
		Delete(documentsTable).
		Where(squirrel.Eq{"key": key}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.conn.ExecContext(ctx, query, args...)
	return err
}

func (s *postgresStore) Ping(ctx context.Context) error {
	if p, ok := s.conn.(pinger); ok {
		return p.Ping(ctx)
	}
	_, err := s.conn.ExecContext(ctx, "SELECT 1")
	return err
}
