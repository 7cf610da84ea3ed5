package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/yourusername/pickscout/internal/datasource"
	"github.com/yourusername/pickscout/internal/leaderboard"
	"github.com/yourusername/pickscout/internal/metrics"
	"github.com/yourusername/pickscout/internal/models"
	"github.com/yourusername/pickscout/internal/profile"
	"github.com/yourusername/pickscout/internal/repository"
)

// CapperStore is the storage the leaderboard endpoint reads.
type CapperStore interface {
	Leaderboard(ctx context.Context, params repository.LeaderboardParams) ([]models.Capper, error)
}

// PickStore is the storage the pick endpoints read.
type PickStore interface {
	GetPending(ctx context.Context, limit int) ([]models.TodaysPick, error)
	GetGradedSince(ctx context.Context, since time.Time) ([]models.TodaysPick, error)
}

// ProfileStore persists onboarding profiles.
type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) error
}

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Service: serviceName})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria, err := models.NewFilterCriteria(q.Get("sport"), q.Get("credibility"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid credibility filter: %v", err))
		return
	}

	limit, err := intParam(q.Get("limit"), s.limits.DefaultLimit, s.limits.MaxLimit)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "limit "+err.Error())
		return
	}

	params := repository.LeaderboardParams{
		Credibility:    criteria.Credibility,
		Limit:          limit,
		PicksPerCapper: s.limits.PicksPerCapper,
	}
	if s.limits.InactiveAfterDays > 0 {
		params.ActiveSince = s.now().Add(-time.Duration(s.limits.InactiveAfterDays) * 24 * time.Hour)
	}

	cappers, err := s.cappers.Leaderboard(r.Context(), params)
	if err != nil {
		s.internalError(w, r, "leaderboard", err)
		return
	}

	cappers = leaderboard.Filter(leaderboard.NarrowPicks(cappers, criteria), criteria)
	writeJSON(w, http.StatusOK, datasource.LeaderboardResponse{Cappers: cappers, Count: len(cappers)})
}

func (s *Server) handleTodaysPicks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	criteria, err := models.NewFilterCriteria(q.Get("sport"), q.Get("credibility"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid credibility filter: %v", err))
		return
	}

	picks, err := s.picks.GetPending(r.Context(), s.limits.TodaysPicksLimit)
	if err != nil {
		s.internalError(w, r, "todays picks", err)
		return
	}

	picks = leaderboard.FilterPicks(picks, criteria)
	writeJSON(w, http.StatusOK, datasource.PicksResponse{Picks: picks, Count: len(picks)})
}

func (s *Server) handleRecentPicks(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r.URL.Query().Get("days"), s.limits.RecentDaysDefault, s.limits.RecentDaysMax)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "days "+err.Error())
		return
	}

	since := s.now().Add(-time.Duration(days) * 24 * time.Hour)
	picks, err := s.picks.GetGradedSince(r.Context(), since)
	if err != nil {
		s.internalError(w, r, "recent picks", err)
		return
	}

	writeJSON(w, http.StatusOK, datasource.PicksResponse{Picks: picks, Count: len(picks)})
}

func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	var req datasource.ProfileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.RiskTolerance == "" {
		req.RiskTolerance = string(models.RiskModerate)
	}
	tolerance, err := models.ParseRiskTolerance(req.RiskTolerance)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	p := models.Profile{
		Email:         req.Email,
		Bankroll:      req.Bankroll,
		UnitSize:      req.UnitSize,
		RiskTolerance: tolerance,
	}
	if err := profile.Validate(p); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.profiles.Create(r.Context(), &p); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			writeError(w, http.StatusConflict, "a profile with this email already exists")
			return
		}
		s.internalError(w, r, "save profile", err)
		return
	}

	metrics.RecordProfileCreated()
	s.audit.LogProfileSaved(p.ID.String(), p.Bankroll, p.UnitSize, string(p.RiskTolerance), p.Email != nil)
	writeJSON(w, http.StatusOK, datasource.ProfileResponse{Success: true, User: &p})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.log.WithError(err).WithField("operation", op).Error("Request failed")
	writeError(w, http.StatusInternalServerError, err.Error())
}

// intParam parses an optional positive integer capped at max.
func intParam(raw string, def, max int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("must be an integer")
	}
	if n < 1 || n > max {
		return 0, fmt.Errorf("must be between 1 and %d", max)
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, datasource.ErrorResponse{Detail: detail})
}
