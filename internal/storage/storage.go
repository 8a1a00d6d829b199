package storage

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/config"
)

// Storage owns the connection pool. Reads go through Read, writes through a
// Writer bound to one database transaction.
type Storage struct {
	sqlDB *sql.DB
	DB    bob.DB
}

func NewStorage(env *config.Config) (*Storage, error) {
	return Open(env.PostgresDSN())
}

// Open connects to the Postgres database at dsn.
func Open(dsn string) (*Storage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	return &Storage{
		sqlDB: db,
		DB:    bob.NewDB(db),
	}, nil
}

// SQL exposes the underlying pool for migrations.
func (s *Storage) SQL() *sql.DB {
	return s.sqlDB
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.sqlDB.Close()
}

func (s *Storage) Read() *Reader {
	return NewReader(s.DB)
}

// Write begins a database transaction and returns a Writer bound to it.
func (s *Storage) Write(ctx context.Context) (*Writer, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return NewWriter(tx), nil
}
