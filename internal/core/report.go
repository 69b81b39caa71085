package core

import (
	"sort"
	"time"
)

// RangeSummary bundles the aggregate statistics for a date range.
type RangeSummary struct {
	Total   Money
	Count   int
	Average Money
	BestDay Date
	// Items is the filtered list sorted descending by date.
	Items []Collection
}

// DashboardStats are the fixed-range aggregates shown on the dashboard.
type DashboardStats struct {
	TodayTotal   Money
	MonthTotal   Money
	DailyAverage Money
	ClientCount  int
	// Recent holds up to five entries, newest first by (date, time).
	Recent []Collection
}

// FilterByRange keeps entries with from <= date <= to (inclusive,
// lexicographic on ISO dates). The result is undefined for from > to;
// callers reject inverted ranges via ValidateRange first.
func FilterByRange(collections []Collection, from, to Date) []Collection {
	out := make([]Collection, 0, len(collections))
	for _, c := range collections {
		if c.Date.InRange(from, to) {
			out = append(out, c)
		}
	}
	return out
}

// Summarize computes total, count, average and best day over an already
// filtered slice. The input is not mutated.
func Summarize(filtered []Collection) RangeSummary {
	s := RangeSummary{Count: len(filtered)}
	for _, c := range filtered {
		s.Total.Cents += c.Amount.Cents
	}
	if s.Count > 0 {
		s.Average = Money{Cents: s.Total.Cents / int64(s.Count)}
	}
	s.BestDay = bestDay(filtered)
	s.Items = sortByDateDesc(filtered)
	return s
}

// bestDay groups amounts by date and returns the date with the highest sum.
// Dates are folded in ascending order so ties resolve deterministically to
// the earliest date. Returns "" for an empty input.
func bestDay(filtered []Collection) Date {
	if len(filtered) == 0 {
		return ""
	}
	sums := make(map[Date]int64, len(filtered))
	for _, c := range filtered {
		sums[c.Date] += c.Amount.Cents
	}
	dates := make([]Date, 0, len(sums))
	for d := range sums {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })

	best := dates[0]
	for _, d := range dates[1:] {
		if sums[d] > sums[best] {
			best = d
		}
	}
	return best
}

func sortByDateDesc(collections []Collection) []Collection {
	out := append([]Collection(nil), collections...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// SortByDateTimeDesc orders entries newest first by date, then time-of-day.
// Storage gives no order guarantee, so every consuming view sorts.
func SortByDateTimeDesc(collections []Collection) []Collection {
	out := append([]Collection(nil), collections...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].Time > out[j].Time
	})
	return out
}

// BuildDashboard computes the fixed-range aggregates for "today" and the
// current month as of now. The daily average divides the month total by the
// day of month, mirroring the report card on the dashboard.
func BuildDashboard(collections []Collection, clientCount int, now time.Time) DashboardStats {
	today := NewDate(now)
	month := today.YearMonth()

	stats := DashboardStats{ClientCount: clientCount}
	for _, c := range collections {
		if c.Date == today {
			stats.TodayTotal.Cents += c.Amount.Cents
		}
		if c.Date.YearMonth() == month {
			stats.MonthTotal.Cents += c.Amount.Cents
		}
	}
	if day := now.Day(); day > 0 {
		stats.DailyAverage = Money{Cents: stats.MonthTotal.Cents / int64(day)}
	}

	recent := SortByDateTimeDesc(collections)
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.Recent = recent
	return stats
}
