package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const JobRecalculateWeeklySchedules = "recalculate_weekly_schedules"

// SnapshotRefresher rebuilds the current week's snapshot of every employee.
type SnapshotRefresher interface {
	RefreshCurrentWeek(ctx context.Context) (int, error)
}

type WeeklyScheduleJobs struct {
	refresher SnapshotRefresher
	interval  time.Duration
}

func NewWeeklyScheduleJobs(refresher SnapshotRefresher, interval time.Duration) *WeeklyScheduleJobs {
	return &WeeklyScheduleJobs{refresher: refresher, interval: interval}
}

func (j *WeeklyScheduleJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob(Job{
		Name:     JobRecalculateWeeklySchedules,
		Interval: j.interval,
		Fn:       j.RecalculateWeeklySchedules,
	})
}

func (j *WeeklyScheduleJobs) RecalculateWeeklySchedules(ctx context.Context) error {
	updated, err := j.refresher.RefreshCurrentWeek(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh weekly schedules: %w", err)
	}
	slog.Info("cron: weekly schedules refreshed", "employees", updated)
	return nil
}
