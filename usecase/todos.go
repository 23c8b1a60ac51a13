package usecase

import (
	"context"
	"time"

	"prioritix/model"
	"prioritix/utils"
)

// RecentWindow is how far back Recent looks.
const RecentWindow = 7 * 24 * time.Hour

// TodoStore is the persistence the todo service needs. *repository.TodosRepo
// implements it.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	FindTodos(ctx context.Context, filter model.TodoFilter, page model.Page) ([]*model.Todo, int64, error)
	FindTodosCreatedSince(ctx context.Context, userID string, since time.Time) ([]*model.Todo, error)
	UpdateTodo(ctx context.Context, todoID, userID string, changes *model.TodoChanges, now time.Time) (*model.Todo, error)
	DeleteTodo(ctx context.Context, todoID, userID string) error
}

type TodosService struct {
	store TodoStore
	now   func() time.Time
}

func NewTodosService(store TodoStore) *TodosService {
	return &TodosService{store: store, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (svc *TodosService) WithClock(now func() time.Time) *TodosService {
	svc.now = now
	return svc
}

// timestamps are stored at millisecond precision, like BSON dates
func (svc *TodosService) timestamp() time.Time {
	return svc.now().UTC().Truncate(time.Millisecond)
}

// ListTodos returns one page of the caller's todos, newest first.
func (svc *TodosService) ListTodos(ctx context.Context, filter model.TodoFilter, page model.Page) (*model.TodoList, error) {
	todos, total, err := svc.store.FindTodos(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("list")

	totalPages := 0
	if page.Limit > 0 {
		totalPages = int((total + int64(page.Limit) - 1) / int64(page.Limit))
	}
	return &model.TodoList{
		Todos:       todos,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: page.Number,
	}, nil
}

// RecentTodos returns every todo the caller created in the last seven days.
func (svc *TodosService) RecentTodos(ctx context.Context, userID string) ([]*model.Todo, error) {
	todos, err := svc.store.FindTodosCreatedSince(ctx, userID, svc.timestamp().Add(-RecentWindow))
	if err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("recent")
	return todos, nil
}

// CreateTodo validates input and stores a new todo owned by userID.
func (svc *TodosService) CreateTodo(ctx context.Context, userID string, in model.TodoInput) (*model.Todo, error) {
	todo, err := ValidateTodoInput(in)
	if err != nil {
		return nil, err
	}

	now := svc.timestamp()
	todo.UserID = userID
	todo.CreatedAt = now
	todo.UpdatedAt = now

	if err := svc.store.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("create")
	return todo, nil
}

// UpdateTodo applies a partial update to a todo owned by userID. Todos that
// do not exist or belong to someone else yield model.ErrNotFound.
func (svc *TodosService) UpdateTodo(ctx context.Context, userID, todoID string, patch model.TodoPatch) (*model.Todo, error) {
	changes, err := ValidateTodoPatch(patch)
	if err != nil {
		return nil, err
	}

	todo, err := svc.store.UpdateTodo(ctx, todoID, userID, changes, svc.timestamp())
	if err != nil {
		return nil, err
	}
	utils.TrackTodoOperation("update")
	return todo, nil
}

// DeleteTodo permanently removes a todo owned by userID.
func (svc *TodosService) DeleteTodo(ctx context.Context, userID, todoID string) error {
	if err := svc.store.DeleteTodo(ctx, todoID, userID); err != nil {
		return err
	}
	utils.TrackTodoOperation("delete")
	return nil
}
