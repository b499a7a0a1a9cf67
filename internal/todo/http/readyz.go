package http

import (
	"net/http"
	"time"

	"github.com/listkeeper/listkeeper/internal/todo/store"
	"github.com/listkeeper/listkeeper/pkg/httpx"
	"github.com/listkeeper/listkeeper/pkg/todosdk"
)

// ReadyzHandler is the readiness probe. It pings the database and reports
// 503 with per-check detail when a dependency is down.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &todosdk.HealthChecks{
			Database: "ok",
		}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, todosdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
