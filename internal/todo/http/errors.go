package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/listkeeper/listkeeper/internal/todo/service"
	"github.com/listkeeper/listkeeper/internal/todo/store"
	"github.com/listkeeper/listkeeper/pkg/slogx"
	"github.com/listkeeper/listkeeper/pkg/todosdk"
)

// writeServiceError maps service and store errors onto the API error
// vocabulary. Anything unrecognized is logged and reported as a bare
// server_error so internals never leak into a response body.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		todosdk.ErrNotFound.WriteError(w)
	case errors.Is(err, service.ErrForbidden):
		todosdk.ErrForbidden.WriteError(w)
	case errors.Is(err, service.ErrTitleRequired):
		todosdk.ErrValidation.WithDescription("title is required").WriteError(w)
	case errors.Is(err, service.ErrEmailTaken):
		todosdk.ErrDuplicateEmail.WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		todosdk.ErrInvalidCredentials.WriteError(w)
	default:
		slogx.FromContext(ctx).Error("unhandled service error", "err", err)
		todosdk.ErrServerError.WriteError(w)
	}
}
