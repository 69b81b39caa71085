package core

import (
	"testing"
	"time"
)

func entry(date Date, cents int64) Collection {
	return Collection{Date: date, Amount: Money{Cents: cents}}
}

func TestSummarize(t *testing.T) {
	// Two in-range entries of 100 and 50, one outside the filter.
	all := []Collection{
		entry("2024-01-05", 10000),
		entry("2024-01-10", 5000),
		entry("2024-02-01", 99900),
	}

	filtered := FilterByRange(all, "2024-01-01", "2024-01-31")
	s := Summarize(filtered)

	if s.Total.Cents != 15000 {
		t.Fatalf("total: expected 15000, got %d", s.Total.Cents)
	}
	if s.Count != 2 {
		t.Fatalf("count: expected 2, got %d", s.Count)
	}
	if s.Average.Cents != 7500 {
		t.Fatalf("average: expected 7500, got %d", s.Average.Cents)
	}
	if s.BestDay != "2024-01-05" {
		t.Fatalf("best day: expected 2024-01-05, got %q", s.BestDay)
	}
	if len(s.Items) != 2 || s.Items[0].Date != "2024-01-10" {
		t.Fatalf("items not sorted newest first: %+v", s.Items)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.Total.Cents != 0 || s.Count != 0 || s.Average.Cents != 0 {
		t.Fatalf("expected zero aggregates, got %+v", s)
	}
	if s.BestDay != "" {
		t.Fatalf("expected empty best day, got %q", s.BestDay)
	}
}

func TestSummarizeBestDayGroupsByDate(t *testing.T) {
	// 60+50 on the 10th beats the single 100 on the 5th.
	s := Summarize([]Collection{
		entry("2024-01-05", 10000),
		entry("2024-01-10", 6000),
		entry("2024-01-10", 5000),
	})
	if s.BestDay != "2024-01-10" {
		t.Fatalf("expected 2024-01-10, got %q", s.BestDay)
	}
}

func TestSummarizeBestDayTie(t *testing.T) {
	// Equal sums resolve to the earliest date regardless of input order.
	s := Summarize([]Collection{
		entry("2024-01-20", 5000),
		entry("2024-01-03", 5000),
		entry("2024-01-11", 5000),
	})
	if s.BestDay != "2024-01-03" {
		t.Fatalf("expected 2024-01-03, got %q", s.BestDay)
	}
}

func TestSummarizeAverageTruncates(t *testing.T) {
	s := Summarize([]Collection{
		entry("2024-01-01", 100),
		entry("2024-01-02", 100),
		entry("2024-01-03", 101),
	})
	if s.Average.Cents != 100 {
		t.Fatalf("expected integer-cents average 100, got %d", s.Average.Cents)
	}
}

func TestFilterByRangeSingleDay(t *testing.T) {
	all := []Collection{
		entry("2024-01-04", 100),
		entry("2024-01-05", 200),
		entry("2024-01-06", 300),
	}
	got := FilterByRange(all, "2024-01-05", "2024-01-05")
	if len(got) != 1 || got[0].Date != "2024-01-05" {
		t.Fatalf("expected only the matching day, got %+v", got)
	}
}

func TestSortByDateTimeDesc(t *testing.T) {
	in := []Collection{
		{Date: "2024-01-05", Time: "09:00:00"},
		{Date: "2024-01-06", Time: "08:00:00"},
		{Date: "2024-01-05", Time: "15:30:00"},
	}
	got := SortByDateTimeDesc(in)

	if got[0].Date != "2024-01-06" {
		t.Fatalf("expected newest date first, got %+v", got)
	}
	if got[1].Time != "15:30:00" || got[2].Time != "09:00:00" {
		t.Fatalf("expected same-day entries ordered by time desc, got %+v", got)
	}
	// Input order is preserved.
	if in[0].Date != "2024-01-05" || in[0].Time != "09:00:00" {
		t.Fatalf("input was mutated: %+v", in)
	}
}

func TestBuildDashboard(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	all := []Collection{
		entry("2024-03-10", 2000), // today
		entry("2024-03-01", 3000), // this month
		entry("2024-02-28", 9999), // previous month
	}

	stats := BuildDashboard(all, 3, now)

	if stats.TodayTotal.Cents != 2000 {
		t.Fatalf("today total: expected 2000, got %d", stats.TodayTotal.Cents)
	}
	if stats.MonthTotal.Cents != 5000 {
		t.Fatalf("month total: expected 5000, got %d", stats.MonthTotal.Cents)
	}
	// 5000 cents over 10 days elapsed.
	if stats.DailyAverage.Cents != 500 {
		t.Fatalf("daily average: expected 500, got %d", stats.DailyAverage.Cents)
	}
	if stats.ClientCount != 3 {
		t.Fatalf("client count: expected 3, got %d", stats.ClientCount)
	}
	if len(stats.Recent) != 3 || stats.Recent[0].Date != "2024-03-10" {
		t.Fatalf("recent not ordered newest first: %+v", stats.Recent)
	}
}

func TestBuildDashboardRecentCapped(t *testing.T) {
	var all []Collection
	for day := 1; day <= 9; day++ {
		all = append(all, entry(Date(time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format(DateLayout)), 100))
	}
	stats := BuildDashboard(all, 0, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	if len(stats.Recent) != 5 {
		t.Fatalf("expected recent capped at 5, got %d", len(stats.Recent))
	}
	if stats.Recent[0].Date != "2024-03-09" {
		t.Fatalf("expected newest first, got %+v", stats.Recent[0])
	}
}
