package usecase

import (
	"context"
	"math"
	"time"

	"prioritix/model"
)

// TrendWindow is the span covered by the weekly completion trend.
const TrendWindow = 7 * 24 * time.Hour

type AnalyticsStore interface {
	SummaryAggregate(ctx context.Context, userID string, trendSince time.Time) (*model.SummaryAggregate, error)
	MonthlyAggregate(ctx context.Context, userID string, from, to time.Time) (*model.MonthlyAggregate, error)
}

// AnalyticsService derives the caller's statistics. loc decides where a
// calendar month starts.
type AnalyticsService struct {
	store AnalyticsStore
	loc   *time.Location
	now   func() time.Time
}

func NewAnalyticsService(store AnalyticsStore, loc *time.Location) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{store: store, loc: loc, now: time.Now}
}

func (svc *AnalyticsService) WithClock(now func() time.Time) *AnalyticsService {
	svc.now = now
	return svc
}

func (svc *AnalyticsService) Summary(ctx context.Context, userID string) (*model.AnalyticsSummary, error) {
	agg, err := svc.store.SummaryAggregate(ctx, userID, svc.now().UTC().Add(-TrendWindow))
	if err != nil {
		return nil, err
	}

	summary := &model.AnalyticsSummary{
		TotalTodos:             agg.Total,
		CompletedTodos:         agg.Completed,
		PendingTodos:           agg.Total - agg.Completed,
		CompletionRate:         completionRate(agg.Completed, agg.Total),
		CategoryStats:          nonNil(agg.Categories),
		PriorityStats:          nonNil(agg.Priorities),
		WeeklyTrend:            nonNil(agg.WeeklyTrend),
		MostProductiveCategory: "none",
		AverageTimeSpent:       roundedMean(agg.AvgTimeSpent),
	}
	if len(summary.CategoryStats) > 0 {
		summary.MostProductiveCategory = summary.CategoryStats[0].Key
	}
	return summary, nil
}

// Monthly reports on todos created during the current calendar month.
func (svc *AnalyticsService) Monthly(ctx context.Context, userID string) (*model.MonthlyAnalytics, error) {
	from, to := monthBounds(svc.now(), svc.loc)

	agg, err := svc.store.MonthlyAggregate(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return &model.MonthlyAnalytics{
		Month:          from.Format("January 2006"),
		TotalCreated:   agg.TotalCreated,
		TotalCompleted: agg.TotalCompleted,
		AvgTimeSpent:   roundedMean(agg.AvgTimeSpent),
	}, nil
}

// monthBounds returns [first of month, first of next month) in loc.
func monthBounds(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 1, 0)
}

// completionRate is a percentage rounded to one decimal.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*1000) / 10
}

func roundedMean(avg *float64) int {
	if avg == nil {
		return 0
	}
	return int(math.Round(*avg))
}

func nonNil(buckets []model.CountBucket) []model.CountBucket {
	if buckets == nil {
		return []model.CountBucket{}
	}
	return buckets
}
