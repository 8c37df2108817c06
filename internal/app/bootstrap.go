package app

import (
	"context"
	"fmt"
	"log"
	"slices"
	"strings"

	"careerpath/internal/config"
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/delivery/http/routes"
	"careerpath/internal/pkg/response"
	"careerpath/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

const bodyLimit = 10 * 1024 * 1024

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// NewFiber builds the HTTP server around an already wired route registry.
func NewFiber(cfg config.AppConfig, reg *routes.Registry, logger *log.Logger) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		BodyLimit: bodyLimit,
		ErrorHandler: func(c fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
			return response.Error(c, status, "", nil)
		},
	})

	registerGlobalMiddleware(f, cfg, logger)
	reg.Register(f)

	return f
}

func New(c *Container) *App {
	cfg := c.Config
	authMw := middleware.NewAuthMiddleware(c.JWT)

	reg := &routes.Registry{
		Health:   handler.NewHealthHandler(cfg.App, c.DB, c.Cache),
		Roadmap:  handler.NewRoadmapHandler(c.Roadmap),
		Progress: handler.NewProgressHandler(c.Progress),
		WS:       ws.NewHandler(c.Hub, middleware.UserIDFromCtx, cfg.App.CORSOrigins, c.Logger),
		Auth:     authMw,
	}

	return &App{Fiber: NewFiber(cfg.App, reg, c.Logger), Container: c}
}

// Bootstrap wires the container and the HTTP app. The returned cleanup stops
// the websocket hub and releases every connection.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return New(c), cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.AppConfig, logger *log.Logger) {
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete, fiber.MethodOptions},
		AllowHeaders:     []string{fiber.HeaderContentType, fiber.HeaderAuthorization},
		AllowCredentials: !slices.Contains(cfg.CORSOrigins, "*"),
	}))

	app.Use(middleware.NewErrorMiddleware(cfg.IsProduction(), logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
