package handler

import (
	"careerpath/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type notFoundResponse struct {
	Error              string   `json:"error"`
	Message            string   `json:"message"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}

// NotFound is registered last and answers every unmatched route.
func NotFound(c fiber.Ctx) error {
	return response.JSON(c, fiber.StatusNotFound, notFoundResponse{
		Error:              response.MessageNotFound,
		Message:            "The requested resource " + c.OriginalURL() + " was not found",
		AvailableEndpoints: []string{"/api/roadmap", "/ws/roadmap", "/health"},
	})
}
