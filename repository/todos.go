package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"prioritix/model"
	"prioritix/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

func NewTodosRepo(collection *mongo.Collection) *TodosRepo {
	return &TodosRepo{MongoCollection: collection}
}

func (r *TodosRepo) collectionName() string {
	return r.MongoCollection.Name()
}

// CreateTodo inserts a new todo, generating its ID when empty.
func (r *TodosRepo) CreateTodo(ctx context.Context, todo *model.Todo) error {
	timer := utils.TrackDBOperation("insert", r.collectionName())
	defer timer.ObserveDuration()

	if todo.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}
	if todo.TodoID == "" {
		todo.TodoID = uuid.New().String()
	}

	if _, err := r.MongoCollection.InsertOne(ctx, todo); err != nil {
		utils.TrackError("database", "todo_creation_failed")
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

// FindTodos returns one page of the owner's todos, newest first, and the
// number of todos matching the filter.
func (r *TodosRepo) FindTodos(ctx context.Context, filter model.TodoFilter, page model.Page) ([]*model.Todo, int64, error) {
	timer := utils.TrackDBOperation("find", r.collectionName())
	defer timer.ObserveDuration()

	query := buildListFilter(filter)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(page.Skip()).
		SetLimit(int64(page.Limit))

	todos, err := r.find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.MongoCollection.CountDocuments(ctx, query)
	if err != nil {
		utils.TrackError("database", "todo_count_failed")
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}
	return todos, total, nil
}

// FindTodosCreatedSince returns every todo of the owner created at or after since, newest first.
func (r *TodosRepo) FindTodosCreatedSince(ctx context.Context, userID string, since time.Time) ([]*model.Todo, error) {
	timer := utils.TrackDBOperation("find_recent", r.collectionName())
	defer timer.ObserveDuration()

	query := bson.M{
		"user_id":   userID,
		"createdAt": bson.M{"$gte": since},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, query, opts)
}

// UpdateTodo applies changes to the todo owned by userID and returns the
// stored result. A todo owned by someone else is reported as not found.
func (r *TodosRepo) UpdateTodo(ctx context.Context, todoID, userID string, changes *model.TodoChanges, now time.Time) (*model.Todo, error) {
	timer := utils.TrackDBOperation("update", r.collectionName())
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     todoID,
		"user_id": userID,
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var todo model.Todo
	err := r.MongoCollection.FindOneAndUpdate(ctx, filter, buildTodoUpdate(changes, now), opts).Decode(&todo)
	if errors.Is(err, mongo.ErrNoDocuments) {
		utils.TrackError("database", "todo_not_found")
		return nil, fmt.Errorf("todo %s: %w", todoID, model.ErrNotFound)
	}
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return nil, fmt.Errorf("update todo %s: %w", todoID, err)
	}

	if changes.Completed != nil && *changes.Completed {
		utils.TrackTodoCompletion()
	}
	return &todo, nil
}

// DeleteTodo removes the todo owned by userID.
func (r *TodosRepo) DeleteTodo(ctx context.Context, todoID, userID string) error {
	timer := utils.TrackDBOperation("delete", r.collectionName())
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     todoID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "todo_deletion_failed")
		return fmt.Errorf("delete todo %s: %w", todoID, err)
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "todo_not_found")
		return fmt.Errorf("todo %s: %w", todoID, model.ErrNotFound)
	}
	return nil
}

func (r *TodosRepo) find(ctx context.Context, query bson.M, opts *options.FindOptions) ([]*model.Todo, error) {
	cursor, err := r.MongoCollection.Find(ctx, query, opts)
	if err != nil {
		utils.TrackError("database", "todo_fetch_failed")
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*model.Todo{}
	if err = cursor.All(ctx, &todos); err != nil {
		utils.TrackError("database", "todo_decode_failed")
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	return todos, nil
}

// helper functions

func buildListFilter(f model.TodoFilter) bson.M {
	query := bson.M{"user_id": f.UserID}
	if f.Category != nil {
		query["category"] = *f.Category
	}
	if f.Priority != nil {
		query["priority"] = *f.Priority
	}
	if f.Completed != nil {
		query["completed"] = *f.Completed
	}
	return query
}

// buildTodoUpdate turns validated changes into an update pipeline. Values are
// wrapped in $literal so user text starting with "$" is never read as a path.
// completedAt is written through $ifNull: it is set by the first completion
// and kept as is afterwards.
func buildTodoUpdate(c *model.TodoChanges, now time.Time) mongo.Pipeline {
	set := bson.M{"updatedAt": literal(now)}
	if c.Title != nil {
		set["title"] = literal(*c.Title)
	}
	if c.Description != nil {
		set["description"] = literal(*c.Description)
	}
	if c.Category != nil {
		set["category"] = literal(*c.Category)
	}
	if c.Priority != nil {
		set["priority"] = literal(*c.Priority)
	}
	if c.Completed != nil {
		set["completed"] = literal(*c.Completed)
		if *c.Completed {
			set["completedAt"] = bson.M{"$ifNull": bson.A{"$completedAt", now}}
		}
	}
	if c.DueDate != nil {
		set["dueDate"] = literal(*c.DueDate)
	}
	if c.TimeSpent != nil {
		set["timeSpent"] = literal(*c.TimeSpent)
	}

	pipeline := mongo.Pipeline{{{Key: "$set", Value: set}}}
	if c.ClearDueDate {
		pipeline = append(pipeline, bson.D{{Key: "$unset", Value: "dueDate"}})
	}
	return pipeline
}

func literal(v any) bson.M {
	return bson.M{"$literal": v}
}
