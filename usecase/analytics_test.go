package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"prioritix/model"
	"prioritix/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func avg(v float64) *float64 { return &v }

func TestAnalyticsSummary(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		agg   *model.SummaryAggregate
		check func(t *testing.T, s *model.AnalyticsSummary)
	}{
		{
			name: "no todos",
			agg:  &model.SummaryAggregate{},
			check: func(t *testing.T, s *model.AnalyticsSummary) {
				assert.Equal(t, 0, s.TotalTodos)
				assert.Equal(t, 0, s.CompletedTodos)
				assert.Equal(t, 0.0, s.CompletionRate)
				assert.Equal(t, "none", s.MostProductiveCategory)
				assert.Equal(t, 0, s.AverageTimeSpent)
				assert.NotNil(t, s.CategoryStats)
				assert.NotNil(t, s.PriorityStats)
				assert.NotNil(t, s.WeeklyTrend)
			},
		},
		{
			name: "derived figures",
			agg: &model.SummaryAggregate{
				Total:        3,
				Completed:    2,
				Categories:   []model.CountBucket{{Key: "work", Count: 2}, {Key: "health", Count: 1}},
				Priorities:   []model.CountBucket{{Key: "high", Count: 3}},
				WeeklyTrend:  []model.CountBucket{{Key: "2026-10-17", Count: 2}},
				AvgTimeSpent: avg(22.5),
			},
			check: func(t *testing.T, s *model.AnalyticsSummary) {
				assert.Equal(t, 1, s.PendingTodos)
				assert.Equal(t, 66.7, s.CompletionRate)
				assert.Equal(t, "work", s.MostProductiveCategory)
				assert.Equal(t, 23, s.AverageTimeSpent)
				assert.Len(t, s.WeeklyTrend, 1)
			},
		},
		{
			name: "all completed",
			agg:  &model.SummaryAggregate{Total: 4, Completed: 4},
			check: func(t *testing.T, s *model.AnalyticsSummary) {
				assert.Equal(t, 100.0, s.CompletionRate)
				assert.Equal(t, 0, s.PendingTodos)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &testutils.StubAnalyticsStore{Summary: tt.agg}
			svc := NewAnalyticsService(store, time.UTC).WithClock(func() time.Time { return now })

			summary, err := svc.Summary(context.Background(), "alice")
			require.NoError(t, err)
			assert.Equal(t, now.Add(-7*24*time.Hour), store.TrendSince)
			tt.check(t, summary)
		})
	}
}

func TestAnalyticsMonthly(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	tests := []struct {
		name      string
		now       time.Time
		loc       *time.Location
		wantFrom  time.Time
		wantTo    time.Time
		wantMonth string
	}{
		{
			name:      "mid month",
			now:       time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
			loc:       time.UTC,
			wantFrom:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC),
			wantMonth: "October 2026",
		},
		{
			name:      "december rolls into next year",
			now:       time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC),
			loc:       time.UTC,
			wantFrom:  time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
			wantTo:    time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
			wantMonth: "December 2026",
		},
		{
			name:      "local month differs from UTC",
			now:       time.Date(2026, 10, 31, 23, 30, 0, 0, time.UTC),
			loc:       berlin,
			wantFrom:  time.Date(2026, 11, 1, 0, 0, 0, 0, berlin),
			wantTo:    time.Date(2026, 12, 1, 0, 0, 0, 0, berlin),
			wantMonth: "November 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &testutils.StubAnalyticsStore{Month: &model.MonthlyAggregate{
				TotalCreated: 4, TotalCompleted: 1, AvgTimeSpent: avg(12.4),
			}}
			svc := NewAnalyticsService(store, tt.loc).WithClock(func() time.Time { return tt.now })

			monthly, err := svc.Monthly(context.Background(), "alice")
			require.NoError(t, err)
			assert.True(t, tt.wantFrom.Equal(store.From), "from %v", store.From)
			assert.True(t, tt.wantTo.Equal(store.To), "to %v", store.To)
			assert.Equal(t, tt.wantMonth, monthly.Month)
			assert.Equal(t, 4, monthly.TotalCreated)
			assert.Equal(t, 1, monthly.TotalCompleted)
			assert.Equal(t, 12, monthly.AvgTimeSpent)
		})
	}
}

func TestAnalyticsStoreError(t *testing.T) {
	store := &testutils.StubAnalyticsStore{Err: errors.New("boom")}
	svc := NewAnalyticsService(store, nil)

	_, err := svc.Summary(context.Background(), "alice")
	assert.Error(t, err)
	_, err = svc.Monthly(context.Background(), "alice")
	assert.Error(t, err)
}
