package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/listkeeper/listkeeper/internal/todo/service"
	"github.com/listkeeper/listkeeper/internal/todo/store"
	"github.com/listkeeper/listkeeper/pkg/httpx"
	"github.com/listkeeper/listkeeper/pkg/jwtx"
	"github.com/listkeeper/listkeeper/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	UserService  *service.UserService
	TokenService *service.TokenService
	TodoService  *service.TodoService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion, corsOrigin string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(corsOrigin),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerAuth()
	r.registerTodos()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Registration is the one unauthenticated write endpoint.
	r.Mux.Handle("POST /users/{$}", http.HandlerFunc(h.HandleRegister))

	r.Mux.Handle("GET /users/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			httpx.AuthnMiddleware(r.verifier),
		),
	)
}

func (r *Router) registerAuth() {
	h := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	r.Mux.Handle("POST /auth/login", h)
}

func (r *Router) registerTodos() {
	collection := &TodosHandler{TodoService: r.TodoService}
	item := &TodoItemHandler{TodoService: r.TodoService}

	authn := httpx.AuthnMiddleware(r.verifier)

	r.Mux.Handle("GET /todos/{$}", httpx.Chain(http.HandlerFunc(collection.HandleList), authn))
	r.Mux.Handle("POST /todos/{$}", httpx.Chain(http.HandlerFunc(collection.HandleCreate), authn))

	r.Mux.Handle("GET /todos/{id}", httpx.Chain(http.HandlerFunc(item.HandleGet), authn))
	r.Mux.Handle("PUT /todos/{id}", httpx.Chain(http.HandlerFunc(item.HandleUpdate), authn))
	r.Mux.Handle("DELETE /todos/{id}", httpx.Chain(http.HandlerFunc(item.HandleDelete), authn))
	r.Mux.Handle("PATCH /todos/{id}/toggle", httpx.Chain(http.HandlerFunc(item.HandleToggle), authn))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
