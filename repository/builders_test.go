package repository

import (
	"testing"
	"time"

	"prioritix/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func ptr[T any](v T) *T { return &v }

func TestBuildListFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter model.TodoFilter
		want   bson.M
	}{
		{
			name:   "owner only",
			filter: model.TodoFilter{UserID: "u1"},
			want:   bson.M{"user_id": "u1"},
		},
		{
			name: "all filters",
			filter: model.TodoFilter{
				UserID:    "u1",
				Category:  ptr(model.CategoryWork),
				Priority:  ptr(model.PriorityHigh),
				Completed: ptr(false),
			},
			want: bson.M{
				"user_id":   "u1",
				"category":  model.CategoryWork,
				"priority":  model.PriorityHigh,
				"completed": false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildListFilter(tt.filter))
		})
	}
}

func TestBuildTodoUpdate(t *testing.T) {
	now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	setStage := func(t *testing.T, pipeline mongo.Pipeline) bson.M {
		t.Helper()
		require.NotEmpty(t, pipeline)
		require.Equal(t, "$set", pipeline[0][0].Key)
		return pipeline[0][0].Value.(bson.M)
	}

	tests := []struct {
		name    string
		changes model.TodoChanges
		check   func(t *testing.T, pipeline mongo.Pipeline)
	}{
		{
			name:    "only updatedAt when nothing changes",
			changes: model.TodoChanges{},
			check: func(t *testing.T, pipeline mongo.Pipeline) {
				assert.Equal(t, mongo.Pipeline{{{Key: "$set", Value: bson.M{"updatedAt": bson.M{"$literal": now}}}}}, pipeline)
			},
		},
		{
			name: "present fields are set as literals",
			changes: model.TodoChanges{
				Title:     ptr("$where"),
				Category:  ptr(model.CategoryWork),
				DueDate:   &due,
				TimeSpent: ptr(45),
			},
			check: func(t *testing.T, pipeline mongo.Pipeline) {
				set := setStage(t, pipeline)
				assert.Equal(t, bson.M{"$literal": "$where"}, set["title"])
				assert.Equal(t, bson.M{"$literal": model.CategoryWork}, set["category"])
				assert.Equal(t, bson.M{"$literal": due}, set["dueDate"])
				assert.Equal(t, bson.M{"$literal": 45}, set["timeSpent"])
				assert.NotContains(t, set, "description")
				assert.NotContains(t, set, "completed")
				assert.Len(t, pipeline, 1)
			},
		},
		{
			name:    "clearing the due date unsets it",
			changes: model.TodoChanges{ClearDueDate: true},
			check: func(t *testing.T, pipeline mongo.Pipeline) {
				require.Len(t, pipeline, 2)
				assert.Equal(t, bson.D{{Key: "$unset", Value: "dueDate"}}, pipeline[1])
				assert.NotContains(t, setStage(t, pipeline), "dueDate")
			},
		},
		{
			name:    "completing keeps an existing completedAt",
			changes: model.TodoChanges{Completed: ptr(true)},
			check: func(t *testing.T, pipeline mongo.Pipeline) {
				set := setStage(t, pipeline)
				assert.Equal(t, bson.M{"$literal": true}, set["completed"])
				assert.Equal(t, bson.M{"$ifNull": bson.A{"$completedAt", now}}, set["completedAt"])
			},
		},
		{
			name:    "reopening leaves completedAt alone",
			changes: model.TodoChanges{Completed: ptr(false)},
			check: func(t *testing.T, pipeline mongo.Pipeline) {
				set := setStage(t, pipeline)
				assert.Equal(t, bson.M{"$literal": false}, set["completed"])
				assert.NotContains(t, set, "completedAt")
				assert.Len(t, pipeline, 1)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, buildTodoUpdate(&tt.changes, now))
		})
	}
}

func TestSummaryPipelineIsOwnerScoped(t *testing.T) {
	since := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	pipeline := summaryPipeline("u1", since, "UTC")

	require.Len(t, pipeline, 2)
	assert.Equal(t, bson.D{{Key: "$match", Value: bson.D{{Key: "user_id", Value: "u1"}}}}, pipeline[0])
	assert.Equal(t, "$facet", pipeline[1][0].Key)

	facets := pipeline[1][0].Value.(bson.D)
	var names []string
	for _, f := range facets {
		names = append(names, f.Key)
	}
	assert.Equal(t, []string{"totals", "categories", "priorities", "trend", "avgTime"}, names)
}

func TestMonthlyPipelineWindow(t *testing.T) {
	from := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	pipeline := monthlyPipeline("u1", from, to)

	match := pipeline[0][0].Value.(bson.D)
	assert.Equal(t, bson.E{Key: "user_id", Value: "u1"}, match[0])
	assert.Equal(t, bson.E{Key: "createdAt", Value: bson.D{{Key: "$gte", Value: from}, {Key: "$lt", Value: to}}}, match[1])
}

func TestTodoIndexes(t *testing.T) {
	indexes := todoIndexes()
	require.Len(t, indexes, 2)
	assert.Equal(t, bson.D{{Key: "user_id", Value: 1}, {Key: "createdAt", Value: -1}}, indexes[0].Keys)
}
