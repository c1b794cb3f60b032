package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gameshubapp/gameshub-server/internal/sessions"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	components := make(map[string]ComponentHealth)
	overall := "healthy"

	dbHealth := s.checkDatabase(ctx)
	components["database"] = dbHealth
	if dbHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	sessHealth := s.checkSessions(ctx)
	components["sessions"] = sessHealth
	if sessHealth.Status != "healthy" {
		overall = "unhealthy"
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkDatabase verifies the SQLite database is accessible.
func (s *Server) checkDatabase(ctx context.Context) ComponentHealth {
	if s.store == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "database not configured",
		}
	}

	start := time.Now()
	err := s.store.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "database ping failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}

// checkSessions verifies the badger session store is accessible.
func (s *Server) checkSessions(ctx context.Context) ComponentHealth {
	if s.sessions == nil {
		return ComponentHealth{
			Status:  "degraded",
			Message: "session store not configured",
		}
	}

	start := time.Now()

	// A miss is fine; the read proves the store answers.
	_, err := s.sessions.Get(ctx, "sess-healthcheck")
	latency := time.Since(start)

	if err != nil && !errors.Is(err, sessions.ErrSessionNotFound) {
		return ComponentHealth{
			Status:  "unhealthy",
			Latency: latency.String(),
			Message: "session store read failed",
		}
	}

	return ComponentHealth{
		Status:  "healthy",
		Latency: latency.String(),
	}
}
