package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

const (
	StatsPeriodDay   = "day"
	StatsPeriodWeek  = "week"
	StatsPeriodMonth = "month"
)

// Portuguese month abbreviations for the chart labels.
var monthAbbrev = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// StatisticsService derives study-time statistics from the timeclock log.
// Everything is recomputed from the records on each read.
type StatisticsService struct {
	timeclockRepo *repository.TimeclockRepo
}

func NewStatisticsService(timeclockRepo *repository.TimeclockRepo) *StatisticsService {
	return &StatisticsService{timeclockRepo: timeclockRepo}
}

func (s *StatisticsService) Stats(ctx context.Context, userID uuid.UUID, period string) (*models.TimeclockStats, error) {
	switch period {
	case StatsPeriodDay, StatsPeriodWeek, StatsPeriodMonth:
	case "":
		period = StatsPeriodWeek
	default:
		return nil, &ValidationError{Fields: map[string]string{"period": "Período deve ser day, week ou month"}}
	}

	records, err := s.timeclockRepo.ListAll(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch timeclock records: %w", err)
	}

	return ComputeStats(records, period, time.Now()), nil
}

// ComputeStats builds the statistics payload for one period. Only completed
// records (clock-out set) contribute to the buckets and the week/month/total
// figures; the running session counts toward today only.
func ComputeStats(records []*models.TimeclockRecord, period string, now time.Time) *models.TimeclockStats {
	stats := &models.TimeclockStats{
		Period:      period,
		RecordCount: len(records),
	}

	var completed []*models.TimeclockRecord
	var openMin float64
	for _, rec := range records {
		if rec.Open() {
			stats.OpenSession = true
			openMin += now.Sub(rec.ClockIn).Minutes()
			continue
		}
		completed = append(completed, rec)
	}

	switch period {
	case StatsPeriodDay:
		stats.Buckets = dayBuckets(completed, now)
	case StatsPeriodWeek:
		stats.Buckets = weekBuckets(completed, now)
	case StatsPeriodMonth:
		stats.Buckets = monthBuckets(completed, now)
	}

	dayStart := startOfDay(now)
	weekStart := startOfWeek(now)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var todayMin, weekMin, monthMin, totalMin float64
	for _, rec := range completed {
		minutes := rec.ClockOut.Sub(rec.ClockIn).Minutes()
		totalMin += minutes
		if !rec.ClockIn.Before(dayStart) {
			todayMin += minutes
		}
		if !rec.ClockIn.Before(weekStart) {
			weekMin += minutes
		}
		if !rec.ClockIn.Before(monthStart) {
			monthMin += minutes
		}
	}

	stats.TodayHours = roundHours(todayMin + openMin)
	stats.WeekHours = roundHours(weekMin)
	stats.MonthHours = roundHours(monthMin)
	stats.TotalHours = roundHours(totalMin)
	return stats
}

// dayBuckets covers the last 7 days, oldest first, labeled dd/MM.
func dayBuckets(records []*models.TimeclockRecord, now time.Time) []models.StatsBucket {
	buckets := make([]models.StatsBucket, 0, 7)
	for i := 6; i >= 0; i-- {
		day := startOfDay(now.AddDate(0, 0, -i))
		end := day.AddDate(0, 0, 1)
		buckets = append(buckets, models.StatsBucket{
			Label: day.Format("02/01"),
			Hours: roundHours(minutesBetween(records, day, end)),
		})
	}
	return buckets
}

// weekBuckets covers the last 8 weeks (Monday start), labeled "Sem dd/MM".
func weekBuckets(records []*models.TimeclockRecord, now time.Time) []models.StatsBucket {
	buckets := make([]models.StatsBucket, 0, 8)
	for i := 7; i >= 0; i-- {
		week := startOfWeek(now.AddDate(0, 0, -7*i))
		end := week.AddDate(0, 0, 7)
		buckets = append(buckets, models.StatsBucket{
			Label: "Sem " + week.Format("02/01"),
			Hours: roundHours(minutesBetween(records, week, end)),
		})
	}
	return buckets
}

// monthBuckets covers the last 12 months, labeled "mmm/yy".
func monthBuckets(records []*models.TimeclockRecord, now time.Time) []models.StatsBucket {
	buckets := make([]models.StatsBucket, 0, 12)
	for i := 11; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := month.AddDate(0, 1, 0)
		label := fmt.Sprintf("%s/%02d", monthAbbrev[month.Month()-1], month.Year()%100)
		buckets = append(buckets, models.StatsBucket{
			Label: label,
			Hours: roundHours(minutesBetween(records, month, end)),
		})
	}
	return buckets
}

func minutesBetween(records []*models.TimeclockRecord, start, end time.Time) float64 {
	var minutes float64
	for _, rec := range records {
		if !rec.ClockIn.Before(start) && rec.ClockIn.Before(end) {
			minutes += rec.ClockOut.Sub(rec.ClockIn).Minutes()
		}
	}
	return minutes
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the preceding Monday at midnight.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func roundHours(minutes float64) float64 {
	return math.Round(minutes/60*10) / 10
}
