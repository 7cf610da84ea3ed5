package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/database"
	"github.com/yourusername/pickscout/internal/models"
)

const (
	errScanCapper = "failed to scan capper: %w"

	capperColumns = `
		id, username, COALESCE(display_name, ''), platform, profile_url,
		total_wins, total_losses, total_units_won, credibility, last_active, created_at`
)

// PostgresCapperRepository implements CapperRepository for PostgreSQL
type PostgresCapperRepository struct {
	db *database.DB
}

// NewPostgresCapperRepository creates a new capper repository
func NewPostgresCapperRepository(db *database.DB) CapperRepository {
	return &PostgresCapperRepository{db: db}
}

// Upsert inserts a capper or refreshes the stored one with the same username.
// ID and CreatedAt are written back from the stored row.
func (r *PostgresCapperRepository) Upsert(ctx context.Context, capper *models.Capper) error {
	return upsertCapper(ctx, r.db.GetPool(), capper)
}

// UpsertWithTx upserts a capper using a provided transaction
func (r *PostgresCapperRepository) UpsertWithTx(ctx context.Context, tx pgx.Tx, capper *models.Capper) error {
	return upsertCapper(ctx, tx, capper)
}

func upsertCapper(ctx context.Context, q querier, capper *models.Capper) error {
	if !capper.Credibility.Valid() {
		return fmt.Errorf("failed to upsert capper %q: %w", capper.Username, credibility.ErrUnknownTier)
	}
	if capper.ID == uuid.Nil {
		capper.ID = uuid.New()
	}

	query := `
		INSERT INTO cappers (id, username, display_name, platform, profile_url,
			total_wins, total_losses, total_units_won, credibility, last_active)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, COALESCE($10, NOW()))
		ON CONFLICT (username) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			platform = EXCLUDED.platform,
			profile_url = EXCLUDED.profile_url,
			total_wins = EXCLUDED.total_wins,
			total_losses = EXCLUDED.total_losses,
			total_units_won = EXCLUDED.total_units_won,
			credibility = EXCLUDED.credibility,
			last_active = EXCLUDED.last_active
		RETURNING id, last_active, created_at
	`

	var activeArg any
	if !capper.LastActive.IsZero() {
		activeArg = capper.LastActive
	}

	err := q.QueryRow(ctx, query,
		capper.ID, capper.Username, capper.DisplayName, string(capper.Platform), capper.ProfileURL,
		capper.TotalWins, capper.TotalLosses, capper.TotalUnitsWon, string(capper.Credibility), activeArg,
	).Scan(&capper.ID, &capper.LastActive, &capper.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert capper: %w", mapWriteError(err))
	}

	return nil
}

// GetByUsername retrieves a capper without its picks
func (r *PostgresCapperRepository) GetByUsername(ctx context.Context, username string) (*models.Capper, error) {
	query := `SELECT ` + capperColumns + ` FROM cappers WHERE username = $1`

	capper, err := scanCapper(r.db.GetPool().QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get capper: %w", err)
	}

	return capper, nil
}

// Leaderboard returns active cappers ordered by units won, each carrying up
// to PicksPerCapper of its most recent pending picks.
func (r *PostgresCapperRepository) Leaderboard(ctx context.Context, params LeaderboardParams) ([]models.Capper, error) {
	var tier any
	if params.Credibility != nil {
		tier = string(*params.Credibility)
	}

	query := `
		SELECT ` + capperColumns + `
		FROM cappers
		WHERE last_active >= $1
		  AND ($2::text IS NULL OR credibility = $2)
		ORDER BY total_units_won DESC, id ASC
		LIMIT $3
	`

	rows, err := r.db.GetPool().Query(ctx, query, params.ActiveSince, tier, params.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	var cappers []models.Capper
	index := make(map[uuid.UUID]int)
	ids := make([]string, 0)
	for rows.Next() {
		capper, err := scanCapper(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanCapper, err)
		}
		capper.ActivePicks = []models.Pick{}
		index[capper.ID] = len(cappers)
		ids = append(ids, capper.ID.String())
		cappers = append(cappers, *capper)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}

	if len(cappers) == 0 || params.PicksPerCapper <= 0 {
		return cappers, nil
	}

	picks, err := pendingPicksFor(ctx, r.db.GetPool(), ids, params.PicksPerCapper)
	if err != nil {
		return nil, err
	}
	for _, p := range picks {
		if i, ok := index[p.CapperID]; ok {
			cappers[i].ActivePicks = append(cappers[i].ActivePicks, p)
		}
	}

	return cappers, nil
}

func pendingPicksFor(ctx context.Context, q querier, capperIDs []string, perCapper int) ([]models.Pick, error) {
	query := `
		SELECT ` + pickColumns + `
		FROM (
			SELECT p.*, ROW_NUMBER() OVER (PARTITION BY p.capper_id ORDER BY p.created_at DESC, p.id) AS rn
			FROM picks p
			WHERE p.capper_id = ANY($1::uuid[]) AND p.status = 'pending'
		) p
		WHERE p.rn <= $2
		ORDER BY p.capper_id, p.created_at DESC, p.id
	`

	rows, err := q.Query(ctx, query, capperIDs, perCapper)
	if err != nil {
		return nil, fmt.Errorf("failed to query active picks: %w", err)
	}
	defer rows.Close()

	var picks []models.Pick
	for rows.Next() {
		pick, err := scanPick(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanPick, err)
		}
		picks = append(picks, *pick)
	}

	return picks, rows.Err()
}

func scanCapper(row pgx.Row) (*models.Capper, error) {
	var (
		c        models.Capper
		platform string
		tier     string
	)
	err := row.Scan(
		&c.ID, &c.Username, &c.DisplayName, &platform, &c.ProfileURL,
		&c.TotalWins, &c.TotalLosses, &c.TotalUnitsWon, &tier, &c.LastActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Platform = models.Platform(platform)
	c.Credibility = credibility.Tier(tier)
	return &c, nil
}
