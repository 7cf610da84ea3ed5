// Package datasource reaches the PickScout API: the remote query interface the
// ranking core consumes.
package datasource

import (
	"context"
	"errors"

	"github.com/yourusername/pickscout/internal/models"
)

// Source defines the read-only queries the dashboard needs.
type Source interface {
	// GetLeaderboard returns cappers in the server's order, each carrying its active picks.
	GetLeaderboard(ctx context.Context, criteria models.FilterCriteria) ([]models.Capper, error)

	// GetTodaysPicks returns pending picks, each with its capper embedded when known.
	GetTodaysPicks(ctx context.Context, criteria models.FilterCriteria) ([]models.TodaysPick, error)

	// GetRecentPicks returns graded picks from the last days days.
	GetRecentPicks(ctx context.Context, days int) ([]models.TodaysPick, error)
}

// ProfileWriter stores onboarding profiles.
type ProfileWriter interface {
	SaveProfile(ctx context.Context, profile models.Profile) (*models.Profile, error)
}

// DataSourceError represents errors from data source operations
type DataSourceError struct {
	Source  string // Data source name
	Code    string // Error code (e.g., "rate_limit_exceeded")
	Message string // Error message
	Err     error  // Underlying error
}

func (e DataSourceError) Error() string {
	if e.Err != nil {
		return e.Source + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Source + ": " + e.Code + ": " + e.Message
}

// Unwrap exposes the underlying error to errors.Is.
func (e DataSourceError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeRateLimitExceeded = "rate_limit_exceeded"
	ErrCodeBadRequest        = "bad_request"
	ErrCodeNotFound          = "not_found"
	ErrCodeInvalidData       = "invalid_data"
	ErrCodeNetworkError      = "network_error"
	ErrCodeServerError       = "server_error"
	ErrCodeCircuitOpen       = "circuit_open"
)

// Error constructors
var (
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	ErrBadRequest        = errors.New("bad request")
	ErrNotFound          = errors.New("data not found")
	ErrInvalidData       = errors.New("invalid data format")
	ErrNetworkError      = errors.New("network error")
	ErrServerError       = errors.New("server error")
	ErrCircuitOpen       = errors.New("circuit breaker open")
)

// NewDataSourceError creates a new data source error
func NewDataSourceError(source, code, message string, err error) DataSourceError {
	return DataSourceError{
		Source:  source,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
