package testutils

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"prioritix/model"

	"github.com/google/uuid"
)

// MemoryTodoStore is an in-memory stand-in for the Mongo todo repository
// with the same ownership and completedAt rules.
type MemoryTodoStore struct {
	mu    sync.Mutex
	todos map[string]*model.Todo

	// Err, when set, is returned by every call.
	Err error
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{todos: make(map[string]*model.Todo)}
}

func clone(t *model.Todo) *model.Todo {
	c := *t
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

// Get returns a copy of a stored todo regardless of owner.
func (s *MemoryTodoStore) Get(todoID string) (*model.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.todos[todoID]
	if !ok {
		return nil, false
	}
	return clone(t), true
}

func (s *MemoryTodoStore) CreateTodo(_ context.Context, todo *model.Todo) error {
	if s.Err != nil {
		return s.Err
	}
	if todo.UserID == "" {
		return errors.New("user ID is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if todo.TodoID == "" {
		todo.TodoID = uuid.New().String()
	}
	s.todos[todo.TodoID] = clone(todo)
	return nil
}

func (s *MemoryTodoStore) sorted(match func(*model.Todo) bool) []*model.Todo {
	out := []*model.Todo{}
	for _, t := range s.todos {
		if match(t) {
			out = append(out, clone(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].TodoID > out[j].TodoID
	})
	return out
}

func (s *MemoryTodoStore) FindTodos(_ context.Context, f model.TodoFilter, page model.Page) ([]*model.Todo, int64, error) {
	if s.Err != nil {
		return nil, 0, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.sorted(func(t *model.Todo) bool {
		return t.UserID == f.UserID &&
			(f.Category == nil || t.Category == *f.Category) &&
			(f.Priority == nil || t.Priority == *f.Priority) &&
			(f.Completed == nil || t.Completed == *f.Completed)
	})

	total := int64(len(all))
	skip := page.Skip()
	if skip >= total {
		return []*model.Todo{}, total, nil
	}
	end := skip + int64(page.Limit)
	if end > total {
		end = total
	}
	return all[skip:end], total, nil
}

func (s *MemoryTodoStore) FindTodosCreatedSince(_ context.Context, userID string, since time.Time) ([]*model.Todo, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sorted(func(t *model.Todo) bool {
		return t.UserID == userID && !t.CreatedAt.Before(since)
	}), nil
}

func (s *MemoryTodoStore) UpdateTodo(_ context.Context, todoID, userID string, c *model.TodoChanges, now time.Time) (*model.Todo, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[todoID]
	if !ok || t.UserID != userID {
		return nil, fmt.Errorf("todo %s: %w", todoID, model.ErrNotFound)
	}

	if c.Title != nil {
		t.Title = *c.Title
	}
	if c.Description != nil {
		t.Description = *c.Description
	}
	if c.Category != nil {
		t.Category = *c.Category
	}
	if c.Priority != nil {
		t.Priority = *c.Priority
	}
	if c.DueDate != nil {
		due := *c.DueDate
		t.DueDate = &due
	}
	if c.ClearDueDate {
		t.DueDate = nil
	}
	if c.TimeSpent != nil {
		t.TimeSpent = *c.TimeSpent
	}
	if c.Completed != nil {
		t.Completed = *c.Completed
		if *c.Completed && t.CompletedAt == nil {
			at := now
			t.CompletedAt = &at
		}
	}
	t.UpdatedAt = now
	return clone(t), nil
}

func (s *MemoryTodoStore) DeleteTodo(_ context.Context, todoID, userID string) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.todos[todoID]
	if !ok || t.UserID != userID {
		return fmt.Errorf("todo %s: %w", todoID, model.ErrNotFound)
	}
	delete(s.todos, todoID)
	return nil
}

// StubAnalyticsStore returns canned aggregates and records the windows asked for.
type StubAnalyticsStore struct {
	Summary *model.SummaryAggregate
	Month   *model.MonthlyAggregate
	Err     error

	TrendSince time.Time
	From, To   time.Time
}

func (s *StubAnalyticsStore) SummaryAggregate(_ context.Context, _ string, trendSince time.Time) (*model.SummaryAggregate, error) {
	s.TrendSince = trendSince
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Summary == nil {
		return &model.SummaryAggregate{}, nil
	}
	return s.Summary, nil
}

func (s *StubAnalyticsStore) MonthlyAggregate(_ context.Context, _ string, from, to time.Time) (*model.MonthlyAggregate, error) {
	s.From, s.To = from, to
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Month == nil {
		return &model.MonthlyAggregate{}, nil
	}
	return s.Month, nil
}
