package handler

import (
	"time"

	"prioritix/dto"
	"prioritix/model"
	"prioritix/usecase"
	"prioritix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TodoHandler struct {
	service      *usecase.TodosService
	defaultLimit int
	maxLimit     int
	now          func() time.Time
}

func NewTodoHandler(service *usecase.TodosService, defaultLimit, maxLimit int) *TodoHandler {
	return &TodoHandler{
		service:      service,
		defaultLimit: defaultLimit,
		maxLimit:     maxLimit,
		now:          time.Now,
	}
}

// GET /api/todos
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	filter, page, err := usecase.ParseListQuery(userID, usecase.ListParams{
		Page:      c.Query("page"),
		Limit:     c.Query("limit"),
		Category:  c.Query("category"),
		Priority:  c.Query("priority"),
		Completed: c.Query("completed"),
	}, h.defaultLimit, h.maxLimit)
	if err != nil {
		respondError(c, "list_todos", err)
		return
	}

	list, err := h.service.ListTodos(c.Request.Context(), filter, page)
	if err != nil {
		respondError(c, "list_todos", err)
		return
	}
	utils.Success(c, dto.ToTodoListResponse(list, h.now()))
}

// GET /api/todos/recent
func (h *TodoHandler) RecentTodos(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	todos, err := h.service.RecentTodos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "recent_todos", err)
		return
	}
	utils.Success(c, dto.ToTodoResponses(todos, h.now()))
}

// POST /api/todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req model.TodoInput
	if !bindJSON(c, &req) {
		return
	}

	todo, err := h.service.CreateTodo(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "create_todo", err)
		return
	}

	zap.L().Debug("todo created",
		zap.String("todo_id", todo.TodoID),
		zap.String("user_id", userID),
	)
	utils.Created(c, dto.ToTodoResponse(todo, h.now()))
}

// PUT /api/todos/:id
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var patch model.TodoPatch
	if !bindJSON(c, &patch) {
		return
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), userID, c.Param("id"), patch)
	if err != nil {
		respondError(c, "update_todo", err)
		return
	}
	utils.Success(c, dto.ToTodoResponse(todo, h.now()))
}

// DELETE /api/todos/:id
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTodo(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, "delete_todo", err)
		return
	}
	utils.Success(c, dto.MessageResponse{Message: "Todo deleted successfully"})
}
