package http

import (
	"net/http"

	"github.com/listkeeper/listkeeper/internal/todo/domain"
	"github.com/listkeeper/listkeeper/internal/todo/service"
	"github.com/listkeeper/listkeeper/pkg/httpx"
	"github.com/listkeeper/listkeeper/pkg/todosdk"
)

// TodoItemHandler serves the single-record operations under /todos/{id}.
// All of them report not_found for a missing id and forbidden for a record
// owned by someone else, in that order.
type TodoItemHandler struct {
	TodoService *service.TodoService
}

func (h *TodoItemHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	t, err := h.TodoService.Get(ctx, r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(t))
}

func (h *TodoItemHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req todosdk.TodoUpdateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		todosdk.ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}

	patch := domain.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Completed:   req.Completed,
	}

	t, err := h.TodoService.Update(ctx, r.PathValue("id"), userID, patch)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(t))
}

func (h *TodoItemHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	if err := h.TodoService.Delete(ctx, r.PathValue("id"), userID); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *TodoItemHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	t, err := h.TodoService.Toggle(ctx, r.PathValue("id"), userID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(t))
}
