package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yourusername/pickscout/internal/database"
	"github.com/yourusername/pickscout/internal/models"
)

const pgUniqueViolation = "23505"

// Repositories holds all repository implementations
type Repositories struct {
	Capper CapperRepository
	Pick   PickRepository
	User   UserRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Capper: NewPostgresCapperRepository(db),
		Pick:   NewPostgresPickRepository(db),
		User:   NewPostgresUserRepository(db),
	}, nil
}

// Check runs the cheapest read each API endpoint depends on, so readiness
// fails when the schema is missing or a query no longer matches it.
func (r *Repositories) Check(ctx context.Context) error {
	if _, err := r.Capper.Leaderboard(ctx, LeaderboardParams{Limit: 1}); err != nil {
		return fmt.Errorf("capper leaderboard: %w", err)
	}
	if _, err := r.Pick.GetPending(ctx, 1); err != nil {
		return fmt.Errorf("pending picks: %w", err)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %s", models.ErrDuplicateKey, pgErr.ConstraintName)
	}
	return err
}
