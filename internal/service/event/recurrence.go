package event

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/validator"
	"github.com/teambition/rrule-go"
)

// maxSeriesOccurrences caps a series at roughly one year of daily shifts.
const maxSeriesOccurrences = 370

// expandSeries turns a recurrence rule into the shift occurrences between
// req.From and req.Until, both inclusive. Call req.Validate first.
func expandSeries(req event.CreateSeriesRequest) ([]shiftSpan, error) {
	from, err := calendar.ParseDate(req.From)
	if err != nil {
		return nil, err
	}
	until, err := calendar.ParseDate(req.Until)
	if err != nil {
		return nil, err
	}
	startHour, startMinute, err := validator.ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	endHour, endMinute, err := validator.ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}

	option, err := rrule.StrToROption(req.RRule)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", event.ErrInvalidRecurrence, err)
	}
	option.Dtstart = from.At(startHour, startMinute, time.UTC)
	windowEnd := until.At(23, 59, time.UTC)
	if option.Until.IsZero() || option.Until.After(windowEnd) {
		option.Until = windowEnd
	}

	rule, err := rrule.NewRRule(*option)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", event.ErrInvalidRecurrence, err)
	}

	var spans []shiftSpan
	next := rule.Iterator()
	for {
		occurrence, ok := next()
		if !ok {
			break
		}
		day := calendar.DateOf(occurrence)
		if day.Before(from) {
			continue
		}
		if day.After(until) {
			break
		}
		// Sub-daily rules still yield one shift per day.
		if n := len(spans); n > 0 && spans[n-1].day() == day {
			continue
		}
		if len(spans) == maxSeriesOccurrences {
			return nil, fmt.Errorf("%w: more than %d", event.ErrSeriesTooLong, maxSeriesOccurrences)
		}
		spans = append(spans, shiftSpan{
			start: day.At(startHour, startMinute, time.UTC),
			end:   day.At(endHour, endMinute, time.UTC),
		})
	}

	if len(spans) == 0 {
		return nil, event.ErrEmptySeries
	}
	return spans, nil
}
