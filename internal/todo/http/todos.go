package http

import (
	"net/http"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
	"github.com/listkeeper/listkeeper/internal/todo/service"
	"github.com/listkeeper/listkeeper/pkg/httpx"
	"github.com/listkeeper/listkeeper/pkg/todosdk"
)

type TodosHandler struct {
	TodoService *service.TodoService
}

// HandleList returns every todo owned by the authenticated user, oldest
// first. An empty list is a 200 with [], never a 404.
func (h *TodosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	todos, err := h.TodoService.List(ctx, userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	out := make([]todosdk.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate persists a new todo for the authenticated user.
func (h *TodosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req todosdk.TodoCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		todosdk.ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		todosdk.ErrValidation.WithDescription("title is required").WriteError(w)
		return
	}

	t, err := h.TodoService.Create(ctx, userID, req.Title, req.Description, req.DueDate)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTodoResponse(t))
}

func toTodoResponse(t domain.Todo) todosdk.TodoResponse {
	return todosdk.TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
	}
}
