package report

import "errors"

var (
	ErrInvalidPeriod   = errors.New("invalid period, month must be 1-12 and year 1-9999")
	ErrInvalidRange    = errors.New("invalid date range, start must not be after end")
	ErrRangeTooLong    = errors.New("date range too long, end must be at most 90 days after start")
	ErrSnapshotMissing = errors.New("weekly schedule snapshot not found")
)
