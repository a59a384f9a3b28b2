package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-scheduler-go/internal/domain/report"
	"github.com/cmlabs-hris/shift-scheduler-go/internal/pkg/calendar"
)

const workWeekDays = 5

// ComputeBaseline returns the contract norm for a month: weekdays times the
// daily rate. Leave and shifts play no part in it.
func ComputeBaseline(dailyContractHours float64, year int, month time.Month) (report.ContractBaseline, error) {
	if err := checkPeriod(year, month); err != nil {
		return report.ContractBaseline{}, err
	}

	total := calendar.DaysInMonth(year, month)
	weekend := 0
	for day := 1; day <= total; day++ {
		if calendar.NewDate(year, month, day).IsWeekend() {
			weekend++
		}
	}
	working := total - weekend

	return report.ContractBaseline{
		TotalDaysInMonth:    total,
		WeekendDays:         weekend,
		WorkingDays:         working,
		DailyContractHours:  dailyContractHours,
		TotalContractHours:  roundHours(float64(working) * dailyContractHours),
		WeeklyContractHours: roundHours(dailyContractHours * workWeekDays),
	}, nil
}

func checkPeriod(year int, month time.Month) error {
	if month < time.January || month > time.December || year < 1 || year > 9999 {
		return fmt.Errorf("%w: got %04d-%02d", report.ErrInvalidPeriod, year, int(month))
	}
	return nil
}
