package handler

import (
	"context"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/delivery/http/dto"
	"careerpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const (
	checkOK          = "ok"
	checkUnavailable = "unavailable"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports process status. The cache is optional, so only a
// failing database marks the service degraded.
type HealthHandler struct {
	app   config.AppConfig
	db    Pinger
	cache Pinger
	now   func() time.Time
}

func NewHealthHandler(app config.AppConfig, db, cache Pinger) *HealthHandler {
	return &HealthHandler{app: app, db: db, cache: cache, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
	r.Get("/", h.Index)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	checks := dto.HealthChecks{
		Database: ping(ctx, h.db),
		Cache:    ping(ctx, h.cache),
	}

	status, code := "healthy", fiber.StatusOK
	if checks.Database != checkOK {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	return response.JSON(c, code, dto.HealthResponse{
		Status:      status,
		Timestamp:   h.now().UTC().Format(time.RFC3339),
		Environment: h.app.Environment,
		Region:      h.app.Region,
		Checks:      checks,
	})
}

func (h *HealthHandler) Index(c fiber.Ctx) error {
	return response.JSON(c, fiber.StatusOK, dto.IndexResponse{
		Service:   "Career Roadmap API",
		Status:    "operational",
		Endpoints: Endpoints(),
	})
}

// Endpoints lists the public routes for the index and 404 responses.
func Endpoints() []string {
	return []string{
		"/api/roadmap - POST career roadmap generation",
		"/api/roadmap/me - GET stored roadmap",
		"/api/roadmap/me/milestones - PUT toggle milestone",
		"/api/roadmap/experience-levels - GET experience level table",
		"/ws/roadmap - WS roadmap events",
		"/health - GET service status",
	}
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return checkUnavailable
	}
	if err := p.Ping(ctx); err != nil {
		return checkUnavailable
	}
	return checkOK
}
