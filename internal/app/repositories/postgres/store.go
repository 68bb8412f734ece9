// Package postgres is the PostgreSQL storage backend. Toggles and votes lock the
// parent row inside a transaction so counters always match the stored records.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/campuscope/campuscope/internal/app/repositories"
	"github.com/campuscope/campuscope/internal/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements repositories.Store on PostgreSQL
type Store struct {
	db     *db.PostgresDB
	sb     squirrel.StatementBuilderType
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

var _ repositories.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithClock overrides the timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a store on an open connection pool
func New(database *db.PostgresDB, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		db:     database,
		sb:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ping checks the connection pool
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) idOr(id string) string {
	if id != "" {
		return id
	}
	return s.newID()
}

func (s *Store) timeOr(t time.Time) time.Time {
	if !t.IsZero() {
		return t.UTC()
	}
	return s.now()
}

// build renders a squirrel statement, naming the operation on failure
func build(op string, b squirrel.Sqlizer) (string, []any, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("failed to build %s query: %w", op, err)
	}
	return sql, args, nil
}

// collect scans every row with scan and closes rows
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]*T, error) {
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

// nonNil keeps NOT NULL array and jsonb columns from receiving NULL
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func timeFromNull(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
