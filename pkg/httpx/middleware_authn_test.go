package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/listkeeper/listkeeper/pkg/jwtx"
)

func testVerifier(t *testing.T) *jwtx.HS256 {
	t.Helper()

	h, err := jwtx.NewHS256([]byte("authn-middleware-test-secret-0123456789"), "todo-service")
	require.NoError(t, err)
	return h
}

func authnRequest(t *testing.T, v jwtx.Verifier, authorization string) *httptest.ResponseRecorder {
	t.Helper()

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	AuthnMiddleware(v)(next).ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		require.NotEmpty(t, gotUserID, "handler should see the resolved user id")
	}
	return rec
}

func TestAuthnMiddleware(t *testing.T) {
	t.Parallel()
	h := testVerifier(t)

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewAccessClaims("user-1", "todo-service", time.Minute, time.Now()))
		require.NoError(t, err)

		rec := authnRequest(t, h, "Bearer "+token)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := authnRequest(t, h, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("non-bearer scheme rejected", func(t *testing.T) {
		rec := authnRequest(t, h, "Basic dXNlcjpwYXNz")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token rejected with invalid_token", func(t *testing.T) {
		rec := authnRequest(t, h, "Bearer not-a-jwt")
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "invalid_token", body["error"])
	})

	t.Run("expired token rejected with expired_token", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewAccessClaims("user-1", "todo-service", time.Minute, time.Now().Add(-time.Hour)))
		require.NoError(t, err)

		rec := authnRequest(t, h, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, "expired_token", body["error"])
	})
}

func TestCORS(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("allowed origin gets headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rec := httptest.NewRecorder()

		CORS("http://localhost:5173")(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origin gets no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		CORS("http://localhost:5173")(next).ServeHTTP(rec, req)

		require.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard echoes origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/todos/", nil)
		req.Header.Set("Origin", "https://anywhere.example")
		rec := httptest.NewRecorder()

		CORS("*")(next).ServeHTTP(rec, req)

		require.Equal(t, "https://anywhere.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/todos/", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		req.Header.Set("Access-Control-Request-Method", "PUT")
		rec := httptest.NewRecorder()

		CORS("http://localhost:5173")(next).ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"outer", "inner", "handler"}, order)
}
