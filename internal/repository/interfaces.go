package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/models"
)

// LeaderboardParams narrows the storage-side leaderboard query.
type LeaderboardParams struct {
	Credibility    *credibility.Tier
	ActiveSince    time.Time
	Limit          int
	PicksPerCapper int
}

// CapperRepository defines the interface for capper data access
type CapperRepository interface {
	Upsert(ctx context.Context, capper *models.Capper) error
	UpsertWithTx(ctx context.Context, tx pgx.Tx, capper *models.Capper) error
	GetByUsername(ctx context.Context, username string) (*models.Capper, error)
	Leaderboard(ctx context.Context, params LeaderboardParams) ([]models.Capper, error)
}

// PickRepository defines the interface for pick data access
type PickRepository interface {
	Create(ctx context.Context, pick *models.Pick) error
	CreateWithTx(ctx context.Context, tx pgx.Tx, pick *models.Pick) error
	GetPending(ctx context.Context, limit int) ([]models.TodaysPick, error)
	GetGradedSince(ctx context.Context, since time.Time) ([]models.TodaysPick, error)
}

// UserRepository defines the interface for user profile data access
type UserRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
}
