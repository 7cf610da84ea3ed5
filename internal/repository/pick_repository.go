package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/database"
	"github.com/yourusername/pickscout/internal/models"
)

const (
	errScanPick = "failed to scan pick: %w"

	pickColumns = `
		p.id, p.capper_id, COALESCE(p.sport, ''), COALESCE(p.matchup, ''), p.pick_text,
		p.odds, p.risk_units, p.status, p.game_start_time, p.source_url, p.created_at`

	capperRefColumns = `
		c.id, c.username, COALESCE(c.display_name, ''), c.platform, c.profile_url,
		c.total_wins, c.total_losses, c.total_units_won, c.credibility`
)

// PostgresPickRepository implements PickRepository for PostgreSQL
type PostgresPickRepository struct {
	db *database.DB
}

// NewPostgresPickRepository creates a new pick repository
func NewPostgresPickRepository(db *database.DB) PickRepository {
	return &PostgresPickRepository{db: db}
}

// Create inserts a new pick
func (r *PostgresPickRepository) Create(ctx context.Context, pick *models.Pick) error {
	return createPick(ctx, r.db.GetPool(), pick)
}

// CreateWithTx inserts a new pick using a provided transaction
func (r *PostgresPickRepository) CreateWithTx(ctx context.Context, tx pgx.Tx, pick *models.Pick) error {
	return createPick(ctx, tx, pick)
}

func createPick(ctx context.Context, q querier, pick *models.Pick) error {
	if pick.ID == uuid.Nil {
		pick.ID = uuid.New()
	}
	if pick.Status == "" {
		pick.Status = models.PickStatusPending
	}

	query := `
		INSERT INTO picks (id, capper_id, sport, matchup, pick_text, odds, risk_units,
			status, game_start_time, source_url)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		pick.ID, pick.CapperID, pick.Sport, pick.Matchup, pick.PickText, pick.Odds, pick.RiskUnits,
		string(pick.Status), pick.GameStartTime, pick.SourceURL,
	).Scan(&pick.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create pick: %w", mapWriteError(err))
	}

	return nil
}

// GetPending returns the newest pending picks with their cappers embedded
func (r *PostgresPickRepository) GetPending(ctx context.Context, limit int) ([]models.TodaysPick, error) {
	query := `
		SELECT ` + pickColumns + `, ` + capperRefColumns + `
		FROM picks p
		JOIN cappers c ON c.id = p.capper_id
		WHERE p.status = 'pending'
		ORDER BY p.created_at DESC, p.id
		LIMIT $1
	`

	rows, err := r.db.GetPool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending picks: %w", err)
	}
	defer rows.Close()

	return collectTodaysPicks(rows)
}

// GetGradedSince returns won, lost and pushed picks created at or after since
func (r *PostgresPickRepository) GetGradedSince(ctx context.Context, since time.Time) ([]models.TodaysPick, error) {
	query := `
		SELECT ` + pickColumns + `, ` + capperRefColumns + `
		FROM picks p
		JOIN cappers c ON c.id = p.capper_id
		WHERE p.status IN ('won', 'lost', 'pushed') AND p.created_at >= $1
		ORDER BY p.created_at DESC, p.id
	`

	rows, err := r.db.GetPool().Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query graded picks: %w", err)
	}
	defer rows.Close()

	return collectTodaysPicks(rows)
}

func collectTodaysPicks(rows pgx.Rows) ([]models.TodaysPick, error) {
	picks := []models.TodaysPick{}
	for rows.Next() {
		var (
			tp       models.TodaysPick
			ref      models.CapperRef
			status   string
			platform string
			tier     string
		)
		err := rows.Scan(
			&tp.ID, &tp.CapperID, &tp.Sport, &tp.Matchup, &tp.PickText,
			&tp.Odds, &tp.RiskUnits, &status, &tp.GameStartTime, &tp.SourceURL, &tp.CreatedAt,
			&ref.ID, &ref.Username, &ref.DisplayName, &platform, &ref.ProfileURL,
			&ref.TotalWins, &ref.TotalLosses, &ref.TotalUnitsWon, &tier,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanPick, err)
		}
		tp.Status = models.PickStatus(status)
		ref.Platform = models.Platform(platform)
		ref.Credibility = credibility.Tier(tier)
		tp.Capper = &ref
		picks = append(picks, tp)
	}

	return picks, rows.Err()
}

func scanPick(row pgx.Row) (*models.Pick, error) {
	var (
		p      models.Pick
		status string
	)
	err := row.Scan(
		&p.ID, &p.CapperID, &p.Sport, &p.Matchup, &p.PickText,
		&p.Odds, &p.RiskUnits, &status, &p.GameStartTime, &p.SourceURL, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Status = models.PickStatus(status)
	return &p, nil
}
