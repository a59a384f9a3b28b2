package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

const (
	// A shift longer than breakThresholdHours carries a breakHours break.
	breakThresholdHours = 6.0
	breakHours          = 0.5
	minutesPerDay       = 24 * 60
)

// ResolveDay classifies a single day from the entries that start on it.
// Precedence: leave, timed shift, all-day work marker, day-off marker,
// weekend, then day off.
func ResolveDay(date calendar.Date, entries []event.Entry, dailyContractHours float64) (report.DayRecord, []string) {
	rec := report.DayRecord{
		Date:      date,
		DayOfWeek: date.Weekday().String(),
	}
	var warnings []string

	var (
		leave     *event.LeaveEvent
		shifts    []event.WorkEvent
		marked    bool
		markedOff bool
	)
	for _, e := range sortEntries(entries) {
		switch v := e.(type) {
		case event.LeaveEvent:
			if leave == nil {
				l := v
				leave = &l
			} else {
				warnings = append(warnings, fmt.Sprintf("%s: additional leave %q ignored, %q already applies", date, v.Label, leave.Label))
			}
		case event.WorkEvent:
			switch {
			case v.MarksDayOff():
				markedOff = true
			case v.AllDay:
				marked = true
			default:
				shifts = append(shifts, v)
			}
		}
	}

	switch {
	case leave != nil:
		label := leave.Label
		rec.Status = report.StatusLeave
		rec.Display = label
		rec.LeaveType = &label
		rec.PaidLeave = leave.IsPaid()
		if rec.PaidLeave {
			rec.Hours = roundHours(dailyContractHours)
		}
		if !leave.Known() {
			warnings = append(warnings, fmt.Sprintf("%s: unknown leave type %q counted as unpaid", date, label))
		}

	case len(shifts) > 0:
		first, last := -1, -1
		var (
			minutes int
			breaks  float64
		)
		for _, s := range shifts {
			start, end := clockMinutes(s.Start), endMinutes(s.Start, s.End)
			if end > start {
				minutes += end - start
				if float64(end-start)/60 > breakThresholdHours {
					breaks += breakHours
				}
			}
			if first < 0 || start < first {
				first = start
			}
			if end > last {
				last = end
			}
		}
		startTime, endTime := formatClock(first), formatClock(last)
		activity := shifts[0].Activity
		rec.Status = report.StatusWork
		rec.IsWorkDay = true
		rec.StartTime = &startTime
		rec.EndTime = &endTime
		rec.Activity = &activity
		rec.Display = startTime + " - " + endTime
		rec.Hours = roundHours(float64(minutes) / 60)
		rec.BreakHours = breaks

	case marked:
		rec.Status = report.StatusWorkMarker
		rec.Display = report.DisplayWorkDay
		rec.IsWorkDay = true

	case markedOff:
		rec.Status = report.StatusDayOff
		rec.Display = report.DisplayDayOff
		rec.IsDayOff = true

	case date.IsWeekend():
		rec.Status = report.StatusWeekend
		rec.Display = report.DisplayWeekend

	default:
		rec.Status = report.StatusDayOff
		rec.Display = report.DisplayDayOff
		rec.IsDayOff = true
	}

	return rec, warnings
}

// ResolveRange resolves every day in [from, to]. Entries outside the range
// are ignored.
func ResolveRange(from, to calendar.Date, entries []event.Entry, dailyContractHours float64) ([]report.DayRecord, []string) {
	byDay := make(map[calendar.Date][]event.Entry)
	for _, e := range entries {
		day := e.Day()
		if day.Between(from, to) {
			byDay[day] = append(byDay[day], e)
		}
	}

	var (
		days     []report.DayRecord
		warnings []string
	)
	for d := from; !d.After(to); d = d.AddDays(1) {
		rec, w := ResolveDay(d, byDay[d], dailyContractHours)
		days = append(days, rec)
		warnings = append(warnings, w...)
	}
	return days, warnings
}

// DecodeEvents converts stored events into entries, skipping malformed ones.
func DecodeEvents(events []event.Event) ([]event.Entry, []string) {
	entries := make([]event.Entry, 0, len(events))
	var warnings []string
	for _, e := range events {
		entry, err := e.Entry()
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipped event: %v", err))
			continue
		}
		entries = append(entries, entry)
	}
	return entries, warnings
}

func sortEntries(entries []event.Entry) []event.Entry {
	sorted := make([]event.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].StartsAt(), sorted[j].StartsAt()
		if !a.Equal(b) {
			return a.Before(b)
		}
		return sorted[i].EntryID() < sorted[j].EntryID()
	})
	return sorted
}

// clockMinutes returns minutes since midnight, truncating seconds.
func clockMinutes(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// endMinutes is clockMinutes of end, except that a shift ending exactly at
// the following midnight ends at 24:00.
func endMinutes(start, end time.Time) int {
	if clockMinutes(end) == 0 && calendar.DateOf(end) == calendar.DateOf(start).AddDays(1) {
		return minutesPerDay
	}
	return clockMinutes(end)
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
