package event

import "strings"

// LeaveKind is the closed set of leave types the scheduler understands.
type LeaveKind int

const (
	LeaveUnknown LeaveKind = iota
	LeavePaid
	LeaveSick
	LeaveMaternity
	LeavePaternity
	LeaveDayOff
	LeaveUnpaid
)

// Labels as they arrive from the calendar. Matching is exact and case-sensitive.
const (
	LabelPaidLeave      = "Paid leave"
	LabelSickLeave      = "Sick leave"
	LabelMaternityLeave = "Maternity leave"
	LabelPaternityLeave = "Paternity leave"
	LabelDayOff         = "Day off"
	LabelUnpaidLeave    = "Unpaid leave"
)

var leaveKindsByLabel = map[string]LeaveKind{
	LabelPaidLeave:      LeavePaid,
	LabelSickLeave:      LeaveSick,
	LabelMaternityLeave: LeaveMaternity,
	LabelPaternityLeave: LeavePaternity,
	LabelDayOff:         LeaveDayOff,
	LabelUnpaidLeave:    LeaveUnpaid,
}

// KnownLeaveKinds lists every recognized kind in display order.
var KnownLeaveKinds = []LeaveKind{
	LeavePaid,
	LeaveSick,
	LeaveMaternity,
	LeavePaternity,
	LeaveDayOff,
	LeaveUnpaid,
}

// ParseLeaveKind maps a trimmed label to its kind. The boolean is false for
// empty and unrecognized labels, which map to LeaveUnknown.
func ParseLeaveKind(label string) (LeaveKind, bool) {
	kind, ok := leaveKindsByLabel[strings.TrimSpace(label)]
	if !ok {
		return LeaveUnknown, false
	}
	return kind, true
}

// IsPaid reports whether the leave counts toward planned hours.
func (k LeaveKind) IsPaid() bool {
	switch k {
	case LeavePaid, LeaveSick, LeaveMaternity, LeavePaternity:
		return true
	case LeaveDayOff, LeaveUnpaid, LeaveUnknown:
		return false
	default:
		return false
	}
}

func (k LeaveKind) String() string {
	switch k {
	case LeavePaid:
		return LabelPaidLeave
	case LeaveSick:
		return LabelSickLeave
	case LeaveMaternity:
		return LabelMaternityLeave
	case LeavePaternity:
		return LabelPaternityLeave
	case LeaveDayOff:
		return LabelDayOff
	case LeaveUnpaid:
		return LabelUnpaidLeave
	default:
		return "Unknown"
	}
}

// IsPaidLeave classifies a raw leave label. Unknown and empty labels are unpaid.
func IsPaidLeave(label string) bool {
	if strings.TrimSpace(label) == "" {
		return false
	}
	kind, _ := ParseLeaveKind(label)
	return kind.IsPaid()
}
