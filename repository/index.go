package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func todoIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		// List, recent and monthly queries
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index().
				SetName("user_todos_created").
				SetUnique(false),
		},
		// Weekly trend and completed averages
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "completed", Value: 1},
				{Key: "completedAt", Value: -1},
			},
			Options: options.Index().
				SetName("user_todos_completed"),
		},
	}
}

// SetupIndexes creates the todo indexes. It is idempotent.
func SetupIndexes(ctx context.Context, todos *mongo.Collection) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	names, err := todos.Indexes().CreateMany(ctx, todoIndexes())
	if err != nil {
		return nil, fmt.Errorf("failed to create todos indexes: %w", err)
	}
	return names, nil
}
