package cron

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) RefreshCurrentWeek(context.Context) (int, error) {
	r.calls.Add(1)
	return 3, r.err
}

func TestScheduler_RunsOnStartAndStops(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewScheduler()
	NewWeeklyScheduleJobs(refresher, time.Hour).RegisterJobs(s)

	s.Start(context.Background())
	require.Eventually(t, func() bool { return refresher.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(1), refresher.calls.Load())
}

func TestScheduler_RunJob(t *testing.T) {
	refresher := &countingRefresher{err: assert.AnError}
	s := NewScheduler()
	NewWeeklyScheduleJobs(refresher, time.Hour).RegisterJobs(s)

	err := s.RunJob(context.Background(), JobRecalculateWeeklySchedules)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, int32(1), refresher.calls.Load())

	assert.ErrorIs(t, s.RunJob(context.Background(), "missing"), ErrJobNotFound)
}

func TestScheduler_StopWithoutStart(t *testing.T) {
	assert.NotPanics(t, NewScheduler().Stop)
}
