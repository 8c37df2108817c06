package routes

import (
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health   *handler.HealthHandler
	Roadmap  *handler.RoadmapHandler
	Progress *handler.ProgressHandler
	WS       *ws.Handler
	Auth     *middleware.AuthMiddleware
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.Health.RegisterRoutes(app)
	r.registerAPI(app)
	r.registerWS(app)

	app.Use(handler.NotFound)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")

	protected := api.Group("/roadmap/me", r.Auth.Middleware())
	r.Progress.RegisterRoutes(protected)

	r.Roadmap.RegisterRoutes(api.Group("/roadmap"))
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.WS == nil {
		return
	}
	app.Get("/ws/roadmap", r.Auth.Middleware(), r.WS.HandleRoadmapWS)
}
