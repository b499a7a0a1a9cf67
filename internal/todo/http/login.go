package http

import (
	"mime"
	"net/http"

	"github.com/listkeeper/listkeeper/internal/todo/service"
	"github.com/listkeeper/listkeeper/pkg/httpx"
	"github.com/listkeeper/listkeeper/pkg/slogx"
	"github.com/listkeeper/listkeeper/pkg/todosdk"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
}

// ServeHTTP exchanges credentials for a bearer token. The endpoint accepts
// both form encoding (username/password, where username carries the email)
// and a JSON body (email/password), so OAuth2-style password clients and
// plain JSON clients can share it.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, password, ok := h.parseCredentials(r)
	if !ok {
		todosdk.ErrValidation.WithDescription("email and password are required").WriteError(w)
		return
	}

	user, err := h.UserService.Authenticate(ctx, email, password)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	token, err := h.TokenService.Issue(user.ID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign access token", "err", err)
		todosdk.ErrServerError.WriteError(w)
		return
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", user.ID)

	httpx.WriteJSON(w, http.StatusOK, todosdk.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (h *LoginHandler) parseCredentials(r *http.Request) (email, password string, ok bool) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseForm(); err != nil {
			return "", "", false
		}
		email = r.PostFormValue("username")
		password = r.PostFormValue("password")
	default:
		var req todosdk.LoginRequest
		if err := httpx.DecodeJSON(r, &req); err != nil {
			return "", "", false
		}
		email = req.Email
		password = req.Password
	}

	if email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}
