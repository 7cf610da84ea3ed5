// Package seed loads a small set of realistic cappers and picks so a fresh
// database has something to display.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscout/internal/credibility"
	"github.com/yourusername/pickscout/internal/logger"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/repository"
)

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// PickFixture is a pick keyed by its capper's username.
type PickFixture struct {
	CapperUsername string
	StartsIn       time.Duration
	Pick           models.Pick
}

func strPtr(s string) *string { return &s }

// Cappers returns the fixture cappers, all active at now.
func Cappers(now time.Time) []models.Capper {
	return []models.Capper{
		{
			Username:      "LolPropKing1",
			DisplayName:   "LolPropKing1",
			Platform:      models.PlatformReddit,
			ProfileURL:    strPtr("https://reddit.com/u/LolPropKing1"),
			TotalWins:     228,
			TotalLosses:   175,
			TotalUnitsWon: 105.84,
			Credibility:   credibility.Verified,
			LastActive:    now,
		},
		{
			Username:      "wes2211",
			DisplayName:   "wes2211",
			Platform:      models.PlatformReddit,
			ProfileURL:    strPtr("https://reddit.com/u/wes2211"),
			TotalWins:     41,
			TotalLosses:   46,
			TotalUnitsWon: 61.13,
			Credibility:   credibility.Verified,
			LastActive:    now,
		},
		{
			Username:      "lordestros",
			DisplayName:   "lordestros",
			Platform:      models.PlatformReddit,
			ProfileURL:    strPtr("https://reddit.com/u/lordestros"),
			TotalWins:     28,
			TotalLosses:   22,
			TotalUnitsWon: 18.40,
			Credibility:   credibility.Verified,
			LastActive:    now,
		},
		{
			Username:    "SecuredTys_Free",
			DisplayName: "SecuredTys (Free Picks)",
			Platform:    models.PlatformDiscord,
			Credibility: credibility.Unverified,
			LastActive:  now,
		},
	}
}

// Picks returns the fixture picks, one pending pick per fixture capper.
func Picks() []PickFixture {
	reddit := strPtr("https://reddit.com/r/sportsbook")
	return []PickFixture{
		{
			CapperUsername: "LolPropKing1",
			StartsIn:       4 * time.Hour,
			Pick: models.Pick{
				Sport: "Esports", Matchup: "Alliance vs. Johnny Speeds (CS2)", PickText: "Alliance Map 2 ML",
				Odds: -145, RiskUnits: 5, Status: models.PickStatusPending, SourceURL: reddit,
			},
		},
		{
			CapperUsername: "wes2211",
			StartsIn:       2 * time.Hour,
			Pick: models.Pick{
				Sport: "Olympics", Matchup: "Great Britain (W) vs. Canada", PickText: "Great Britain (W) ML",
				Odds: 140, RiskUnits: 2, Status: models.PickStatusPending, SourceURL: reddit,
			},
		},
		{
			CapperUsername: "lordestros",
			StartsIn:       6 * time.Hour,
			Pick: models.Pick{
				Sport: "Hockey", Matchup: "Sweden vs. Switzerland (Women's Hockey)", PickText: "Under 4.5 Goals",
				Odds: -115, RiskUnits: 1, Status: models.PickStatusPending, SourceURL: reddit,
			},
		},
		{
			CapperUsername: "SecuredTys_Free",
			StartsIn:       8 * time.Hour,
			Pick: models.Pick{
				Sport: "Basketball", Matchup: "Lakers vs. Warriors", PickText: "Lakers -5.5",
				Odds: -110, RiskUnits: 1, Status: models.PickStatusPending,
			},
		},
	}
}

// Result counts what a seed run wrote.
type Result struct {
	Cappers int
	Picks   int
}

// Seeder writes the fixtures through the repositories.
type Seeder struct {
	tx       Transactor
	cappers  repository.CapperRepository
	picks    repository.PickRepository
	validate *validator.Validate
	log      *logrus.Entry
	audit    *logger.AuditLogger
	now      func() time.Time
}

// NewSeeder creates a seeder.
func NewSeeder(tx Transactor, repos *repository.Repositories, log *logrus.Logger) *Seeder {
	if log == nil {
		log = logger.Discard()
	}
	return &Seeder{
		tx:       tx,
		cappers:  repos.Capper,
		picks:    repos.Pick,
		validate: validator.New(),
		log:      log.WithField("component", "seed"),
		audit:    logger.NewAuditLogger(log),
		now:      time.Now,
	}
}

// Seed upserts the fixture cappers and inserts their picks in one
// transaction. Cappers are keyed by username, so rerunning refreshes them;
// picks are an append-only ledger and are inserted again.
func (s *Seeder) Seed(ctx context.Context) (Result, error) {
	now := s.now().UTC()
	var res Result

	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		ids := make(map[string]models.Capper)
		for _, c := range Cappers(now) {
			c := c
			if err := s.validate.Struct(c); err != nil {
				return fmt.Errorf("invalid capper fixture %s: %w", c.Username, err)
			}
			if err := s.cappers.UpsertWithTx(ctx, tx, &c); err != nil {
				return err
			}
			ids[c.Username] = c
			res.Cappers++
			s.log.WithFields(logrus.Fields{
				"capper":      c.Username,
				"credibility": c.Credibility,
			}).Info("Seeded capper")
		}

		for _, f := range Picks() {
			owner, ok := ids[f.CapperUsername]
			if !ok {
				return fmt.Errorf("pick fixture references unknown capper %q", f.CapperUsername)
			}
			p := f.Pick
			p.CapperID = owner.ID
			start := now.Add(f.StartsIn)
			p.GameStartTime = &start
			if err := s.validate.Struct(p); err != nil {
				return fmt.Errorf("invalid pick fixture %q: %w", p.PickText, err)
			}
			if err := s.picks.CreateWithTx(ctx, tx, &p); err != nil {
				return err
			}
			res.Picks++
			s.log.WithFields(logrus.Fields{
				"pick":  p.PickText,
				"sport": p.Sport,
			}).Info("Seeded pick")
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("seed failed: %w", err)
	}

	s.audit.LogSeedApplied(res.Cappers, res.Picks, now)
	return res, nil
}
