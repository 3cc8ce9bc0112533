package model

import (
	"time"
)

// DateLayout is the wire and storage format for date-only fields
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date string
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ExpiringSoon reports whether an active contract ends within the next 30
// days. Contracts that already ended, or whose end date cannot be parsed,
// are not expiring soon.
func (c *Contract) ExpiringSoon(now time.Time) bool {
	if c.Status != ContractActive {
		return false
	}
	end, err := ParseDate(c.EndDate)
	if err != nil {
		return false
	}
	return end.After(now) && !end.After(now.Add(30*24*time.Hour))
}

// EffectivelyOverdue is the display-time overdue classification. A payment
// counts as overdue when its stored status says so, or when it is still
// pending past its due date. The stored status is never mutated here;
// callers must use this predicate for display and aggregation instead of
// the raw status.
func (p *Payment) EffectivelyOverdue(now time.Time) bool {
	if p.Status == PaymentOverdue {
		return true
	}
	if p.Status != PaymentPending {
		return false
	}
	due, err := ParseDate(p.DueDate)
	if err != nil {
		return false
	}
	return due.Before(now)
}

// CategoryIcon returns the presentation icon for a service request
// category. Unknown categories fall back to the general icon.
func CategoryIcon(category string) string {
	switch category {
	case CategoryPlumbing:
		return "🔧"
	case CategoryElectrical:
		return "⚡"
	case CategoryHeating:
		return "🔥"
	default:
		return "🏠"
	}
}

// PriorityRank orders priorities for sorting; unknown values rank as
// medium rather than failing.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityLow:
		return 0
	case PriorityHigh:
		return 2
	case PriorityUrgent:
		return 3
	default:
		return 1
	}
}
