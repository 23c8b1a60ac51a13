package repository

import (
	"context"
	"fmt"
	"time"

	"prioritix/model"
	"prioritix/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AnalyticsRepo runs read-only aggregations over the todos collection.
// TimeZone is an IANA name used to bucket completions into calendar days.
type AnalyticsRepo struct {
	MongoCollection *mongo.Collection
	TimeZone        string
}

func NewAnalyticsRepo(collection *mongo.Collection, timeZone string) *AnalyticsRepo {
	return &AnalyticsRepo{MongoCollection: collection, TimeZone: timeZone}
}

type summaryFacets struct {
	Totals []struct {
		Total     int `bson:"total"`
		Completed int `bson:"completed"`
	} `bson:"totals"`
	Categories []model.CountBucket `bson:"categories"`
	Priorities []model.CountBucket `bson:"priorities"`
	Trend      []model.CountBucket `bson:"trend"`
	AvgTime    []struct {
		Avg float64 `bson:"avg"`
	} `bson:"avgTime"`
}

// SummaryAggregate computes every summary figure in a single $facet pass.
func (r *AnalyticsRepo) SummaryAggregate(ctx context.Context, userID string, trendSince time.Time) (*model.SummaryAggregate, error) {
	timer := utils.TrackDBOperation("aggregate_summary", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Aggregate(ctx, summaryPipeline(userID, trendSince, r.TimeZone))
	if err != nil {
		utils.TrackError("database", "summary_aggregate_failed")
		return nil, fmt.Errorf("aggregate summary: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []summaryFacets
	if err := cursor.All(ctx, &rows); err != nil {
		utils.TrackError("database", "summary_decode_failed")
		return nil, fmt.Errorf("decode summary: %w", err)
	}

	agg := &model.SummaryAggregate{
		Categories:  []model.CountBucket{},
		Priorities:  []model.CountBucket{},
		WeeklyTrend: []model.CountBucket{},
	}
	if len(rows) == 0 {
		return agg, nil
	}

	facets := rows[0]
	if len(facets.Totals) > 0 {
		agg.Total = facets.Totals[0].Total
		agg.Completed = facets.Totals[0].Completed
	}
	if facets.Categories != nil {
		agg.Categories = facets.Categories
	}
	if facets.Priorities != nil {
		agg.Priorities = facets.Priorities
	}
	if facets.Trend != nil {
		agg.WeeklyTrend = facets.Trend
	}
	if len(facets.AvgTime) > 0 {
		avg := facets.AvgTime[0].Avg
		agg.AvgTimeSpent = &avg
	}
	return agg, nil
}

// MonthlyAggregate summarises the todos created in [from, to).
func (r *AnalyticsRepo) MonthlyAggregate(ctx context.Context, userID string, from, to time.Time) (*model.MonthlyAggregate, error) {
	timer := utils.TrackDBOperation("aggregate_monthly", r.MongoCollection.Name())
	defer timer.ObserveDuration()

	cursor, err := r.MongoCollection.Aggregate(ctx, monthlyPipeline(userID, from, to))
	if err != nil {
		utils.TrackError("database", "monthly_aggregate_failed")
		return nil, fmt.Errorf("aggregate monthly: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []model.MonthlyAggregate
	if err := cursor.All(ctx, &rows); err != nil {
		utils.TrackError("database", "monthly_decode_failed")
		return nil, fmt.Errorf("decode monthly: %w", err)
	}
	if len(rows) == 0 {
		return &model.MonthlyAggregate{}, nil
	}
	return &rows[0], nil
}

func countBy(field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}
}

func summaryPipeline(userID string, trendSince time.Time, timeZone string) mongo.Pipeline {
	totals := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "completed", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$completed", true}}}, 1, 0}},
			}}}},
		}}},
	}

	trend := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "completed", Value: true},
			{Key: "completedAt", Value: bson.D{{Key: "$gte", Value: trendSince}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "$dateToString", Value: bson.D{
				{Key: "format", Value: "%Y-%m-%d"},
				{Key: "date", Value: "$completedAt"},
				{Key: "timezone", Value: timeZone},
			}}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	avgTime := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "completed", Value: true},
			{Key: "timeSpent", Value: bson.D{{Key: "$gt", Value: 0}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "avg", Value: bson.D{{Key: "$avg", Value: "$timeSpent"}}},
		}}},
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: userID}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "totals", Value: totals},
			{Key: "categories", Value: countBy("category")},
			{Key: "priorities", Value: countBy("priority")},
			{Key: "trend", Value: trend},
			{Key: "avgTime", Value: avgTime},
		}}},
	}
}

func monthlyPipeline(userID string, from, to time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			{Key: "user_id", Value: userID},
			{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalCreated", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "totalCompleted", Value: bson.D{{Key: "$sum", Value: bson.D{
				{Key: "$cond", Value: bson.A{bson.D{{Key: "$eq", Value: bson.A{"$completed", true}}}, 1, 0}},
			}}}},
			{Key: "avgTimeSpent", Value: bson.D{{Key: "$avg", Value: "$timeSpent"}}},
		}}},
	}
}
