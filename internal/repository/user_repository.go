package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/pickscout/internal/database"
	"github.com/yourusername/pickscout/internal/models"
)

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *database.DB
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *database.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create stores a new onboarding profile. A repeated email yields models.ErrDuplicateKey.
func (r *PostgresUserRepository) Create(ctx context.Context, profile *models.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}

	query := `
		INSERT INTO users (id, email, bankroll, unit_size, risk_tolerance)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		profile.ID, profile.Email, profile.Bankroll, profile.UnitSize, string(profile.RiskTolerance),
	).Scan(&profile.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", mapWriteError(err))
	}

	return nil
}
