// Package stats derives dashboard statistics and report rollups from the
// full current entity collections. Every computation is stateless and
// recomputed per request; malformed rows (unparseable dates) degrade the
// aggregate instead of failing it.
package stats

import (
	"sort"
	"time"

	"github.com/pbw78/Rentalmasters/internal/model"
)

// Dashboard holds the statistics shown on the dashboard. MonthlyRevenue
// covers the calendar month of the evaluation time: a payment counts when
// its status is paid and its payment date falls in the same year-month.
type Dashboard struct {
	TotalProperties int     `json:"totalProperties"`
	ActiveTenants   int     `json:"activeTenants"`
	MonthlyRevenue  float64 `json:"monthlyRevenue"`
	PendingIssues   int     `json:"pendingIssues"`
	OccupancyRate   float64 `json:"occupancyRate"`
}

// MonthRevenue is one entry of the monthly revenue trend
type MonthRevenue struct {
	Month string  `json:"month"` // YYYY-MM
	Total float64 `json:"total"`
}

// ServiceStats summarizes service requests for the reports view
type ServiceStats struct {
	ByStatus   map[string]int `json:"byStatus"`
	ByPriority map[string]int `json:"byPriority"`
	TotalCost  float64        `json:"totalCost"`
}

// FinancialSummary is the reports-view money rollup
type FinancialSummary struct {
	TotalCollected float64 `json:"totalCollected"`
	TotalPending   float64 `json:"totalPending"`
	TotalOverdue   float64 `json:"totalOverdue"`
	ServiceCosts   float64 `json:"serviceCosts"`
}

// ComputeDashboard derives the dashboard statistics from the loaded
// collections. With zero properties the occupancy rate is exactly 0.
func ComputeDashboard(properties []model.Property, tenants []model.Tenant, payments []model.Payment, requests []model.ServiceRequest, now time.Time) Dashboard {
	d := Dashboard{TotalProperties: len(properties)}

	rented := 0
	for _, p := range properties {
		if p.Status == model.PropertyRented {
			rented++
		}
	}
	if len(properties) > 0 {
		d.OccupancyRate = float64(rented) / float64(len(properties)) * 100
	}

	for _, t := range tenants {
		if t.IsActive {
			d.ActiveTenants++
		}
	}

	month := now.Format("2006-01")
	for _, p := range payments {
		if p.Status == model.PaymentPaid && yearMonth(p.PaymentDate) == month {
			d.MonthlyRevenue += p.Amount
		}
	}

	for _, r := range requests {
		if r.Status == model.RequestOpen || r.Status == model.RequestInProgress {
			d.PendingIssues++
		}
	}

	return d
}

// MonthlyRevenueTrend groups paid payments by the year-month of their
// payment date, sums the amounts, sorts ascending by key and keeps the
// last 6 groups. Payments without a parseable payment date are skipped.
func MonthlyRevenueTrend(payments []model.Payment) []MonthRevenue {
	byMonth := map[string]float64{}
	for _, p := range payments {
		if p.Status != model.PaymentPaid {
			continue
		}
		m := yearMonth(p.PaymentDate)
		if m == "" {
			continue
		}
		byMonth[m] += p.Amount
	}

	trend := make([]MonthRevenue, 0, len(byMonth))
	for m, total := range byMonth {
		trend = append(trend, MonthRevenue{Month: m, Total: total})
	}
	// Zero-padded YYYY-MM keys sort correctly as strings
	sort.Slice(trend, func(i, j int) bool { return trend[i].Month < trend[j].Month })

	if len(trend) > 6 {
		trend = trend[len(trend)-6:]
	}
	return trend
}

// PropertyStatusDistribution counts properties per status. Only statuses
// actually present appear in the result.
func PropertyStatusDistribution(properties []model.Property) map[string]int {
	distribution := map[string]int{}
	for _, p := range properties {
		distribution[p.Status]++
	}
	return distribution
}

// ComputeServiceStats counts service requests by status and by priority
// and sums the actual cost of requests that have one.
func ComputeServiceStats(requests []model.ServiceRequest) ServiceStats {
	s := ServiceStats{
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}
	for _, r := range requests {
		s.ByStatus[r.Status]++
		s.ByPriority[r.Priority]++
		if r.ActualCost != nil {
			s.TotalCost += *r.ActualCost
		}
	}
	return s
}

// ExpiringContracts returns active contracts ending within the next 90
// days, strictly after now. Contracts with unparseable end dates are
// excluded.
func ExpiringContracts(contracts []model.Contract, now time.Time) []model.Contract {
	horizon := now.Add(90 * 24 * time.Hour)
	expiring := []model.Contract{}
	for _, c := range contracts {
		if c.Status != model.ContractActive {
			continue
		}
		end, err := model.ParseDate(c.EndDate)
		if err != nil {
			continue
		}
		if end.After(now) && !end.After(horizon) {
			expiring = append(expiring, c)
		}
	}
	return expiring
}

// ComputeFinancialSummary totals collected, pending and effectively
// overdue payment amounts plus the actual service costs.
func ComputeFinancialSummary(payments []model.Payment, requests []model.ServiceRequest, now time.Time) FinancialSummary {
	var s FinancialSummary
	for i := range payments {
		p := &payments[i]
		switch p.Status {
		case model.PaymentPaid:
			s.TotalCollected += p.Amount
		case model.PaymentPending:
			s.TotalPending += p.Amount
		}
		if p.EffectivelyOverdue(now) {
			s.TotalOverdue += p.Amount
		}
	}
	for _, r := range requests {
		if r.ActualCost != nil {
			s.ServiceCosts += *r.ActualCost
		}
	}
	return s
}

// yearMonth extracts the YYYY-MM prefix of a date field, or "" when the
// date is absent or malformed.
func yearMonth(date *string) string {
	if date == nil {
		return ""
	}
	d, err := model.ParseDate(*date)
	if err != nil {
		return ""
	}
	return d.Format("2006-01")
}
