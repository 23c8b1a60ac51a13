package model

// CountBucket is one group of a $group stage. The key is exposed as _id to
// keep the shape clients already read.
type CountBucket struct {
	Key   string `bson:"_id" json:"_id"`
	Count int    `bson:"count" json:"count"`
}

// SummaryAggregate is the raw result of the summary pipeline.
type SummaryAggregate struct {
	Total        int
	Completed    int
	Categories   []CountBucket
	Priorities   []CountBucket
	WeeklyTrend  []CountBucket
	AvgTimeSpent *float64
}

type AnalyticsSummary struct {
	TotalTodos             int           `json:"totalTodos"`
	CompletedTodos         int           `json:"completedTodos"`
	PendingTodos           int           `json:"pendingTodos"`
	CompletionRate         float64       `json:"completionRate"`
	CategoryStats          []CountBucket `json:"categoryStats"`
	PriorityStats          []CountBucket `json:"priorityStats"`
	WeeklyTrend            []CountBucket `json:"weeklyTrend"`
	MostProductiveCategory string        `json:"mostProductiveCategory"`
	AverageTimeSpent       int           `json:"averageTimeSpent"`
}

// MonthlyAggregate is the raw result of the monthly pipeline.
type MonthlyAggregate struct {
	TotalCreated   int      `bson:"totalCreated"`
	TotalCompleted int      `bson:"totalCompleted"`
	AvgTimeSpent   *float64 `bson:"avgTimeSpent"`
}

type MonthlyAnalytics struct {
	Month          string `json:"month"`
	TotalCreated   int    `json:"totalCreated"`
	TotalCompleted int    `json:"totalCompleted"`
	AvgTimeSpent   int    `json:"avgTimeSpent"`
}
