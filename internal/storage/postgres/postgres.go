// postgres предоставляет реализацию storage.LeadsStorage на базе PostgreSQL.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brunosoares877/Crefaz/internal/storage"
)

type LeadsStorage struct {
	db *pgxpool.Pool
}

// New создает и инициализирует пул соединений к PostgreSQL.
func New(ctx context.Context, dbURL string) (*LeadsStorage, error) {
	const op = "storage/postgres/New"

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LeadsStorage{db: db}, nil
}

// Close закрывает пул соединений.
func (s *LeadsStorage) Close() {
	s.db.Close()
}

var _ storage.LeadsStorage = (*LeadsStorage)(nil)
