package http

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/listkeeper/listkeeper/internal/todo/service"
	"github.com/listkeeper/listkeeper/pkg/httpx"
	"github.com/listkeeper/listkeeper/pkg/slogx"
	"github.com/listkeeper/listkeeper/pkg/todosdk"
)

// validate is shared by every handler; validator instances cache struct
// metadata and are safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

type UsersHandler struct {
	UserService *service.UserService
}

// HandleRegister creates a new account from an email/password pair and
// returns the public user shape. The email must be unique.
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req todosdk.RegisterRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		todosdk.ErrValidation.WithDescription("request body must be valid JSON").WriteError(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		todosdk.ErrValidation.WriteError(w)
		return
	}

	user, err := h.UserService.Register(ctx, req.Email, req.Password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)

	httpx.WriteJSON(w, http.StatusCreated, todosdk.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// HandleMe returns the authenticated user's own record.
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetByID(ctx, userID)
	if err != nil {
		// The token outlived the account; report it as an auth failure
		// rather than a missing resource.
		slogx.FromContext(ctx).Warn("token subject has no user record", "user_id", userID)
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}
