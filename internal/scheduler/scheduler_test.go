package scheduler

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pickscout/internal/models"
)

type countingBoard struct {
	calls atomic.Int32
	last  atomic.Value
}

func (b *countingBoard) Refresh(ctx context.Context, criteria models.FilterCriteria) {
	b.calls.Add(1)
	b.last.Store(criteria.Key())
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestScheduleRefreshRejectsBadExpression(t *testing.T) {
	s := NewScheduler(&countingBoard{}, quietLogger())
	assert.Error(t, s.ScheduleRefresh("every now and then", models.FilterCriteria{}, nil))
	assert.Empty(t, s.Entries())
}

func TestStartRequiresJobs(t *testing.T) {
	s := NewScheduler(&countingBoard{}, quietLogger())
	assert.Error(t, s.Start())
	assert.False(t, s.IsRunning())
	assert.NoError(t, s.Stop())
}

func TestRefreshJobCallsBoardThenHook(t *testing.T) {
	board := &countingBoard{}
	s := NewScheduler(board, quietLogger())
	sport := "Hockey"
	criteria := models.FilterCriteria{Sport: &sport}

	var redraws atomic.Int32
	job := s.refreshJob(criteria, func() {
		assert.Equal(t, int32(1), board.calls.Load())
		redraws.Add(1)
	})
	job()

	assert.Equal(t, int32(1), board.calls.Load())
	assert.Equal(t, int32(1), redraws.Load())
	assert.Equal(t, "hockey|*", board.last.Load())
}

func TestSchedulerLifecycle(t *testing.T) {
	board := &countingBoard{}
	s := NewScheduler(board, quietLogger())

	require.NoError(t, s.ScheduleRefresh("@every 1s", models.FilterCriteria{}, nil))
	require.Len(t, s.Entries(), 1)
	assert.True(t, s.GetNextRun().IsZero(), "no next run before start")

	require.NoError(t, s.Start())
	assert.True(t, s.IsRunning())
	assert.Error(t, s.Start())
	assert.Error(t, s.ScheduleRefresh("@every 1s", models.FilterCriteria{}, nil))
	assert.False(t, s.GetNextRun().IsZero())

	assert.Eventually(t, func() bool { return board.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	require.NoError(t, s.Stop())
	assert.False(t, s.IsRunning())
}
