package handler

import (
	"errors"

	"careerpath/internal/delivery/http/dto"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/domain/roadmap"
	"careerpath/internal/pkg/response"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ProgressHandler struct {
	uc usecase.ProgressUsecase
}

type roadmapDocumentResponse struct {
	Success bool `json:"success"`
	roadmap.Document
}

func NewProgressHandler(uc usecase.ProgressUsecase) *ProgressHandler {
	return &ProgressHandler{uc: uc}
}

// RegisterRoutes expects r to sit behind the auth middleware.
func (h *ProgressHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Get)
	r.Put("/milestones", h.SetMilestone)
}

func (h *ProgressHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	doc, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProgressUsecaseError(err)
	}
	return response.JSON(c, fiber.StatusOK, roadmapDocumentResponse{Success: true, Document: doc})
}

func (h *ProgressHandler) SetMilestone(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.MilestoneRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if err := req.Validate(); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "milestone and completed are required", nil, err)
	}

	doc, err := h.uc.SetMilestone(c.Context(), userID, req.Milestone, *req.Completed)
	if err != nil {
		return mapProgressUsecaseError(err)
	}

	return response.JSON(c, fiber.StatusOK, dto.MilestoneResponse{
		Success:             true,
		CompletedMilestones: doc.CompletedMilestones,
		Completion:          doc.Summary.Completion,
	})
}

func mapProgressUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrRoadmapNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Roadmap not found", nil, err)
	case errors.Is(err, usecase.ErrUnknownMilestone):
		return middleware.NewAppError(fiber.StatusBadRequest, "Milestone is not part of the roadmap", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "Failed to update roadmap", nil, err)
	}
}
