package datasource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pickscout/internal/models"
)

const apiSourceName = "pickscout_api"

// LeaderboardResponse is the body of GET /api/cappers/leaderboard.
type LeaderboardResponse struct {
	Cappers []models.Capper `json:"cappers"`
	Count   int             `json:"count"`
}

// PicksResponse is the body of the pick listing endpoints.
type PicksResponse struct {
	Picks []models.TodaysPick `json:"picks"`
	Count int                 `json:"count"`
}

// ProfileResponse is the body of POST /api/users/profile.
type ProfileResponse struct {
	Success bool            `json:"success"`
	User    *models.Profile `json:"user"`
}

// ProfileRequest is the body of POST /api/users/profile.
type ProfileRequest struct {
	Email         *string `json:"email"`
	Bankroll      float64 `json:"bankroll"`
	UnitSize      float64 `json:"unit_size"`
	RiskTolerance string  `json:"risk_tolerance"`
}

// ErrorResponse is the error body the API writes.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// APISource implements Source against the PickScout HTTP API.
type APISource struct {
	client  *RateLimitedHTTPClient
	baseURL string
	limit   int
	logger  *logrus.Logger
}

// NewAPISource creates a client for the API rooted at baseURL.
// limit caps the leaderboard size; zero leaves the server default.
func NewAPISource(client *RateLimitedHTTPClient, baseURL string, limit int, logger *logrus.Logger) *APISource {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &APISource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		limit:   limit,
		logger:  logger,
	}
}

// Name returns the name of the data source
func (s *APISource) Name() string {
	return apiSourceName
}

// GetLeaderboard implements Source.
func (s *APISource) GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error) {
	params := criteria.Values()
	if s.limit > 0 {
		params.Set("limit", strconv.Itoa(s.limit))
	}

	var body LeaderboardResponse
	if err := s.getJSON(ctx, "/api/cappers/leaderboard", params, &body); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"filter": criteria.Key(),
		"count":  len(body.Cappers),
	}).Debug("Fetched leaderboard")
	return body.Cappers, nil
}

// GetTodaysPicks implements Source.
func (s *APISource) GetTodaysPicks(ctx context.Context, criteria models.FilterCriteria) ([]models.TodaysPick, error) {
	var body PicksResponse
	if err := s.getJSON(ctx, "/api/picks/today", criteria.Values(), &body); err != nil {
		return nil, err
	}
	return body.Picks, nil
}

// GetRecentPicks implements Source.
func (s *APISource) GetRecentPicks(ctx context.Context, days int) ([]models.TodaysPick, error) {
	params := url.Values{}
	if days > 0 {
		params.Set("days", strconv.Itoa(days))
	}

	var body PicksResponse
	if err := s.getJSON(ctx, "/api/picks/recent", params, &body); err != nil {
		return nil, err
	}
	return body.Picks, nil
}

// SaveProfile implements ProfileWriter.
func (s *APISource) SaveProfile(ctx context.Context, profile models.Profile) (*models.Profile, error) {
	payload, err := json.Marshal(ProfileRequest{
		Email:         profile.Email,
		Bankroll:      profile.Bankroll,
		UnitSize:      profile.UnitSize,
		RiskTolerance: string(profile.RiskTolerance),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}

	resp, err := s.client.Post(ctx, s.baseURL+"/api/users/profile", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, transportError("save profile", err)
	}
	defer resp.Body.Close()

	var body ProfileResponse
	if err := decodeResponse(resp, &body); err != nil {
		return nil, err
	}
	return body.User, nil
}

func (s *APISource) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	endpoint := s.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	resp, err := s.client.Get(ctx, endpoint)
	if err != nil {
		return transportError("GET "+path, err)
	}
	defer resp.Body.Close()

	return decodeResponse(resp, out)
}

func transportError(op string, err error) error {
	if errors.Is(err, ErrCircuitOpen) {
		return NewDataSourceError(apiSourceName, ErrCodeCircuitOpen, op, err)
	}
	return NewDataSourceError(apiSourceName, ErrCodeNetworkError, op, fmt.Errorf("%w: %v", ErrNetworkError, err))
}

func decodeResponse(resp *http.Response, out interface{}) error {
	if resp.StatusCode >= 300 {
		var apiErr ErrorResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&apiErr)
		msg := fmt.Sprintf("status %d: %s", resp.StatusCode, apiErr.Detail)

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return NewDataSourceError(apiSourceName, ErrCodeRateLimitExceeded, msg, ErrRateLimitExceeded)
		case resp.StatusCode == http.StatusNotFound:
			return NewDataSourceError(apiSourceName, ErrCodeNotFound, msg, ErrNotFound)
		case resp.StatusCode >= 500:
			return NewDataSourceError(apiSourceName, ErrCodeServerError, msg, ErrServerError)
		default:
			return NewDataSourceError(apiSourceName, ErrCodeBadRequest, msg, ErrBadRequest)
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewDataSourceError(apiSourceName, ErrCodeInvalidData, "decode response", fmt.Errorf("%w: %v", ErrInvalidData, err))
	}
	return nil
}
