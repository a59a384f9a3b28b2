package event

import (
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/event"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

// Labor rules applied to timed work shifts. Leave and all-day entries are exempt.
const (
	maxDailyHours      = 12
	minRestHours       = 12
	maxConsecutiveDays = 6
	// consecutiveWindowDays bounds the run search on each side of the shift date.
	consecutiveWindowDays = 14
)

type shiftSpan struct {
	id    string
	start time.Time
	end   time.Time
}

func (s shiftSpan) day() calendar.Date {
	return calendar.DateOf(s.start)
}

func (s shiftSpan) minutes() int {
	return int(s.end.Sub(s.start) / time.Minute)
}

// rulesWindow is the range of existing events the rules need to see around date.
func rulesWindow(date calendar.Date) (from, to calendar.Date) {
	return date.AddDays(-consecutiveWindowDays), date.AddDays(consecutiveWindowDays)
}

// timedShifts keeps the timed work shifts of existing, dropping excludeID.
func timedShifts(existing []event.Event, excludeID string) []shiftSpan {
	var spans []shiftSpan
	for _, e := range existing {
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		entry, err := e.Entry()
		if err != nil {
			continue
		}
		w, ok := entry.(event.WorkEvent)
		if !ok || w.AllDay {
			continue
		}
		spans = append(spans, shiftSpan{id: w.ID, start: w.Start, end: w.End})
	}
	sort.Slice(spans, func(i, j int) bool {
		if !spans[i].start.Equal(spans[j].start) {
			return spans[i].start.Before(spans[j].start)
		}
		return spans[i].id < spans[j].id
	})
	return spans
}

// checkShiftRules returns every rule the candidate breaks given the other
// shifts of the same employee. An empty result means the shift is allowed.
func checkShiftRules(emp employee.Employee, candidate shiftSpan, others []shiftSpan) []string {
	var violations []string
	if msg := checkDailyHours(candidate, others); msg != "" {
		violations = append(violations, msg)
	}
	if msg := checkRestPeriod(candidate, others); msg != "" {
		violations = append(violations, msg)
	}
	if msg := checkWeeklyHours(emp, candidate, others); msg != "" {
		violations = append(violations, msg)
	}
	if msg := checkConsecutiveDays(candidate, others); msg != "" {
		violations = append(violations, msg)
	}
	return violations
}

func checkDailyHours(candidate shiftSpan, others []shiftSpan) string {
	day := candidate.day()
	minutes := candidate.minutes()
	for _, s := range others {
		if s.day() == day {
			minutes += s.minutes()
		}
	}
	total := float64(minutes) / 60
	if total > maxDailyHours {
		return fmt.Sprintf("Daily work limit exceeded! Total: %.1fh (Max: %dh).", total, maxDailyHours)
	}
	return ""
}

// checkRestPeriod compares whole hours between shifts in both directions and
// reports the first conflict found.
func checkRestPeriod(candidate shiftSpan, others []shiftSpan) string {
	for _, s := range others {
		since := int(candidate.start.Sub(s.end).Hours())
		if since >= 0 && since < minRestHours {
			return fmt.Sprintf("Insufficient rest period! Only %dh after previous shift (Min: %dh). Missing: %dh",
				since, minRestHours, minRestHours-since)
		}
		until := int(s.start.Sub(candidate.end).Hours())
		if until >= 0 && until < minRestHours {
			return fmt.Sprintf("Insufficient rest period! Only %dh before next shift (Min: %dh). Missing: %dh",
				until, minRestHours, minRestHours-until)
		}
	}
	return ""
}

func checkWeeklyHours(emp employee.Employee, candidate shiftSpan, others []shiftSpan) string {
	weekStart := candidate.day().WeekStart()
	minutes := candidate.minutes()
	for _, s := range others {
		if s.day().WeekStart() == weekStart {
			minutes += s.minutes()
		}
	}
	total := float64(minutes) / 60
	limit := emp.MaxWeeklyHours()
	if total > float64(limit) {
		return fmt.Sprintf("Weekly work limit exceeded for %d-hour contract! Total: %.1fh (Max: %dh). Excess: %.1fh",
			emp.ContractHours(), total, limit, total-float64(limit))
	}
	return ""
}

func checkConsecutiveDays(candidate shiftSpan, others []shiftSpan) string {
	date := candidate.day()
	workDays := map[calendar.Date]bool{date: true}
	for _, s := range others {
		workDays[s.day()] = true
	}

	from, to := rulesWindow(date)
	longest, run := 0, 0
	for d := from; !d.After(to); d = d.AddDays(1) {
		if workDays[d] {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}

	if longest > maxConsecutiveDays {
		return fmt.Sprintf("Consecutive work days limit exceeded! Found: %d consecutive days (Max: %d).", longest, maxConsecutiveDays)
	}
	return ""
}
