package event

import (
	"testing"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesRequest(rule, from, until string) event.CreateSeriesRequest {
	return event.CreateSeriesRequest{
		EmployeeID: "emp-1",
		Activity:   "Counter",
		StartTime:  "08:00",
		EndTime:    "16:30",
		RRule:      rule,
		From:       from,
		Until:      until,
	}
}

func TestExpandSeries_Weekly(t *testing.T) {
	spans, err := expandSeries(seriesRequest("FREQ=WEEKLY;BYDAY=MO,WE,FR", "2024-07-01", "2024-07-14"))
	require.NoError(t, err)
	require.Len(t, spans, 6)

	assert.Equal(t, calendar.NewDate(2024, 7, 1), spans[0].day())
	assert.Equal(t, calendar.NewDate(2024, 7, 12), spans[5].day())
	assert.Equal(t, 8, spans[0].start.Hour())
	assert.Equal(t, 16, spans[0].end.Hour())
	assert.Equal(t, 30, spans[0].end.Minute())
	for _, s := range spans {
		assert.False(t, s.day().IsWeekend())
	}
}

func TestExpandSeries_RuleUntilIsRespected(t *testing.T) {
	spans, err := expandSeries(seriesRequest("FREQ=DAILY;UNTIL=20240703T235959Z", "2024-07-01", "2024-07-31"))
	require.NoError(t, err)
	assert.Len(t, spans, 3)
}

func TestExpandSeries_Errors(t *testing.T) {
	_, err := expandSeries(seriesRequest("FREQ=SOMETIMES", "2024-07-01", "2024-07-31"))
	assert.ErrorIs(t, err, event.ErrInvalidRecurrence)

	_, err = expandSeries(seriesRequest("FREQ=DAILY", "2024-01-01", "2025-12-31"))
	assert.ErrorIs(t, err, event.ErrSeriesTooLong)

	// 2024-07-06 is a Saturday.
	_, err = expandSeries(seriesRequest("FREQ=WEEKLY;BYDAY=MO", "2024-07-06", "2024-07-07"))
	assert.ErrorIs(t, err, event.ErrEmptySeries)
}
