package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/xavierca1/merchant-leads/internal/infra/session"
)

type HealthHandler struct {
	DB        *sql.DB
	Sessions  *session.Store
	Version   string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
}

func NewHealthHandler(db *sql.DB, sessions *session.Store, version string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Sessions:  sessions,
		Version:   version,
		StartTime: time.Now(),
	}
}

// Handle (GET /health) always answers 200; degraded dependencies show
// up in the body.
func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(r.Context()); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.Sessions != nil {
		if err := h.Sessions.Ping(r.Context()); err != nil {
			deps["redis"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["redis"] = "healthy"
		}
	} else {
		deps["redis"] = "not configured"
	}

	status := "ok"
	for _, v := range deps {
		if v != "healthy" && v != "not configured" {
			status = "degraded"
			break
		}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:       status,
		Version:      h.Version,
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
	})
}
