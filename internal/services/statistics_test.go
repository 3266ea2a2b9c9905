package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"estudamais-backend/internal/models"
)

func record(clockIn time.Time, minutes int) *models.TimeclockRecord {
	out := clockIn.Add(time.Duration(minutes) * time.Minute)
	return &models.TimeclockRecord{
		ID:       uuid.New(),
		ClockIn:  clockIn,
		ClockOut: &out,
	}
}

func openRecord(clockIn time.Time) *models.TimeclockRecord {
	return &models.TimeclockRecord{ID: uuid.New(), ClockIn: clockIn}
}

// Wednesday, fixed reference point for all bucket tests.
var statsNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

func TestComputeStats_Totals(t *testing.T) {
	records := []*models.TimeclockRecord{
		record(statsNow.Add(-2*time.Hour), 90),   // today, 1.5h
		record(statsNow.AddDate(0, 0, -1), 60),   // yesterday, this week
		record(statsNow.AddDate(0, 0, -10), 120), // this month, previous week
		record(statsNow.AddDate(0, -2, 0), 30),   // older
	}

	stats := ComputeStats(records, StatsPeriodWeek, statsNow)

	if stats.TodayHours != 1.5 {
		t.Errorf("expected 1.5 hours today, got %v", stats.TodayHours)
	}
	if stats.WeekHours != 2.5 {
		t.Errorf("expected 2.5 hours this week, got %v", stats.WeekHours)
	}
	if stats.MonthHours != 4.5 {
		t.Errorf("expected 4.5 hours this month, got %v", stats.MonthHours)
	}
	if stats.TotalHours != 5.0 {
		t.Errorf("expected 5.0 hours total, got %v", stats.TotalHours)
	}
	if stats.RecordCount != 4 {
		t.Errorf("expected 4 records, got %d", stats.RecordCount)
	}
	if stats.OpenSession {
		t.Errorf("no open session in the input")
	}
}

func TestComputeStats_OpenSessionCountsTodayOnly(t *testing.T) {
	records := []*models.TimeclockRecord{
		record(statsNow.Add(-3*time.Hour), 60),
		openRecord(statsNow.Add(-1 * time.Hour)),
	}

	stats := ComputeStats(records, StatsPeriodDay, statsNow)

	if !stats.OpenSession {
		t.Fatalf("expected open session flag")
	}
	// 1h completed plus 1h of the running session
	if stats.TodayHours != 2.0 {
		t.Errorf("expected today to include the running session, got %v", stats.TodayHours)
	}
	// week/month/total only count completed records
	if stats.WeekHours != 1.0 {
		t.Errorf("running session must not count toward the week, got %v", stats.WeekHours)
	}
	if stats.TotalHours != 1.0 {
		t.Errorf("running session must not count toward the total, got %v", stats.TotalHours)
	}
	// the bucket chart only shows completed time
	if stats.Buckets[6].Hours != 1.0 {
		t.Errorf("running session must not inflate the chart, got %v", stats.Buckets[6].Hours)
	}
}

func TestComputeStats_DayBuckets(t *testing.T) {
	records := []*models.TimeclockRecord{
		record(statsNow.Add(-2*time.Hour), 60),
		record(statsNow.AddDate(0, 0, -3), 120),
		record(statsNow.AddDate(0, 0, -30), 600), // outside the window
	}

	stats := ComputeStats(records, StatsPeriodDay, statsNow)

	if len(stats.Buckets) != 7 {
		t.Fatalf("expected 7 day buckets, got %d", len(stats.Buckets))
	}
	if stats.Buckets[0].Label != "12/03" {
		t.Errorf("expected oldest bucket 12/03, got %s", stats.Buckets[0].Label)
	}
	if stats.Buckets[6].Label != "18/03" {
		t.Errorf("expected newest bucket 18/03, got %s", stats.Buckets[6].Label)
	}
	if stats.Buckets[6].Hours != 1.0 {
		t.Errorf("expected 1.0 hour today, got %v", stats.Buckets[6].Hours)
	}
	if stats.Buckets[3].Hours != 2.0 {
		t.Errorf("expected 2.0 hours three days ago, got %v", stats.Buckets[3].Hours)
	}

	var windowTotal float64
	for _, b := range stats.Buckets {
		windowTotal += b.Hours
	}
	if windowTotal != 3.0 {
		t.Errorf("record outside the 7-day window leaked into a bucket: %v", windowTotal)
	}
}

func TestComputeStats_WeekBucketsStartMonday(t *testing.T) {
	stats := ComputeStats(nil, StatsPeriodWeek, statsNow)

	if len(stats.Buckets) != 8 {
		t.Fatalf("expected 8 week buckets, got %d", len(stats.Buckets))
	}
	// 2026-03-18 is a Wednesday; its week starts Monday 2026-03-16
	if stats.Buckets[7].Label != "Sem 16/03" {
		t.Errorf("expected current week label Sem 16/03, got %s", stats.Buckets[7].Label)
	}
	if stats.Buckets[0].Label != "Sem 26/01" {
		t.Errorf("expected oldest week label Sem 26/01, got %s", stats.Buckets[0].Label)
	}
}

func TestComputeStats_MonthBuckets(t *testing.T) {
	records := []*models.TimeclockRecord{
		record(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 60),
		record(time.Date(2025, 12, 15, 9, 0, 0, 0, time.UTC), 90),
	}

	stats := ComputeStats(records, StatsPeriodMonth, statsNow)

	if len(stats.Buckets) != 12 {
		t.Fatalf("expected 12 month buckets, got %d", len(stats.Buckets))
	}
	if stats.Buckets[11].Label != "mar/26" {
		t.Errorf("expected current month label mar/26, got %s", stats.Buckets[11].Label)
	}
	if stats.Buckets[0].Label != "abr/25" {
		t.Errorf("expected oldest month label abr/25, got %s", stats.Buckets[0].Label)
	}
	if stats.Buckets[11].Hours != 1.0 {
		t.Errorf("expected 1.0 hour in March, got %v", stats.Buckets[11].Hours)
	}
	if stats.Buckets[8].Hours != 1.5 {
		t.Errorf("expected 1.5 hours in December, got %v", stats.Buckets[8].Hours)
	}
}

func TestRoundHours(t *testing.T) {
	tests := []struct {
		minutes float64
		want    float64
	}{
		{0, 0},
		{90, 1.5},
		{100, 1.7},
		{59, 1.0},
		{3, 0.1},
	}
	for _, tc := range tests {
		if got := roundHours(tc.minutes); got != tc.want {
			t.Errorf("roundHours(%v) = %v, want %v", tc.minutes, got, tc.want)
		}
	}
}

func TestStartOfWeek(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	sunday := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if got := startOfWeek(sunday); got.Day() != 9 {
		t.Errorf("expected Sunday to map to Monday the 9th, got %v", got)
	}

	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	if got := startOfWeek(monday); !got.Equal(monday) {
		t.Errorf("expected Monday to map to itself, got %v", got)
	}
}
