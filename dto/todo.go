package dto

import (
	"time"

	"prioritix/model"
)

type TodoResponse struct {
	ID          string         `json:"id"`
	User        string         `json:"user"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Category    model.Category `json:"category"`
	Priority    model.Priority `json:"priority"`
	Completed   bool           `json:"completed"`
	CompletedAt *time.Time     `json:"completedAt"`
	DueDate     *time.Time     `json:"dueDate"`
	TimeSpent   int            `json:"timeSpent"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Overdue     bool           `json:"overdue"` // computed: due date passed while still open
}

type TodoListResponse struct {
	Todos       []TodoResponse `json:"todos"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Total       int64          `json:"total"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Convert model.Todo to TodoResponse
func ToTodoResponse(todo *model.Todo, now time.Time) TodoResponse {
	return TodoResponse{
		ID:          todo.TodoID,
		User:        todo.UserID,
		Title:       todo.Title,
		Description: todo.Description,
		Category:    todo.Category,
		Priority:    todo.Priority,
		Completed:   todo.Completed,
		CompletedAt: todo.CompletedAt,
		DueDate:     todo.DueDate,
		TimeSpent:   todo.TimeSpent,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		Overdue:     !todo.Completed && todo.DueDate != nil && todo.DueDate.Before(now),
	}
}

// Convert slice of todos to response; never nil so it encodes as [].
func ToTodoResponses(todos []*model.Todo, now time.Time) []TodoResponse {
	responses := make([]TodoResponse, 0, len(todos))
	for _, todo := range todos {
		responses = append(responses, ToTodoResponse(todo, now))
	}
	return responses
}

func ToTodoListResponse(list *model.TodoList, now time.Time) TodoListResponse {
	return TodoListResponse{
		Todos:       ToTodoResponses(list.Todos, now),
		TotalPages:  list.TotalPages,
		CurrentPage: list.CurrentPage,
		Total:       list.Total,
	}
}
